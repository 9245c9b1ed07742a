package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - user_id must parse as a UUID; a token without a usable identity is
//     structurally valid but operationally unusable, so reject with 401.
func ctxClaims(c echo.Context) (userID uuid.UUID, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	raw, _ := c.Get("user_id").(string)
	userID, parseErr := uuid.Parse(raw)
	if parseErr != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return userID, role, nil
}

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
