package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

type stubUserService struct {
	getFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateFn     func(ctx context.Context, userID uuid.UUID, in ports.UpdateProfileInput) (*domain.User, error)
	deactivateFn func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, userID, in)
}

func (s *stubUserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return s.deactivateFn(ctx, userID)
}

// authedContext builds an echo.Context carrying the claims the Auth
// middleware would set.
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", userID.String())
	c.Set("username", "alice")
	c.Set("role", role)
	return c
}

func TestProfileHandler_Get(t *testing.T) {
	e := newTestEcho()
	userID := uuid.New()
	stub := &stubUserService{
		getFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			if id != userID {
				t.Fatalf("wrong user id: %s", id)
			}
			return &domain.User{ID: id, Username: "alice", Email: "alice@example.com", Role: domain.RoleStudent}, nil
		},
	}
	h := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, userID, "STUDENT")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileHandler_Get_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := NewProfileHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProfileHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	userID := uuid.New()
	stub := &stubUserService{
		updateFn: func(_ context.Context, id uuid.UUID, in ports.UpdateProfileInput) (*domain.User, error) {
			if in.FullName == nil || *in.FullName != "Alice B. Doe" {
				t.Fatalf("full_name not forwarded: %+v", in)
			}
			if in.Email != nil || in.Address != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			return &domain.User{ID: id, Username: "alice", FullName: *in.FullName}, nil
		},
	}
	h := NewProfileHandler(stub)

	body := strings.NewReader(`{"full_name":"Alice B. Doe","phone":"+1-555-0101"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/profile", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, userID, "STUDENT")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["full_name"] != "Alice B. Doe" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestProfileHandler_Update_ValidationBounds(t *testing.T) {
	e := newTestEcho()
	h := NewProfileHandler(&stubUserService{
		updateFn: func(context.Context, uuid.UUID, ports.UpdateProfileInput) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"full name too short", `{"full_name":"A"}`},
		{"full name too long", `{"full_name":"` + strings.Repeat("x", 101) + `"}`},
		{"bad email", `{"email":"not-an-email"}`},
		{"phone too long", `{"phone":"` + strings.Repeat("9", 21) + `"}`},
		{"address too long", `{"address":"` + strings.Repeat("a", 501) + `"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/v1/profile", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := authedContext(e, req, rec, uuid.New(), "STUDENT")

			if err := h.Update(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestProfileHandler_Deactivate(t *testing.T) {
	e := newTestEcho()
	target := uuid.New()
	var got uuid.UUID
	h := NewProfileHandler(&stubUserService{
		deactivateFn: func(_ context.Context, userID uuid.UUID) error {
			got = userID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+target.String()+"/deactivate", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New(), "ADMIN")
	c.SetParamNames("id")
	c.SetParamValues(target.String())

	if err := h.Deactivate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != target {
		t.Errorf("deactivated %s, want %s", got, target)
	}
}

func TestProfileHandler_Deactivate_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewProfileHandler(&stubUserService{
		deactivateFn: func(context.Context, uuid.UUID) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/users/nope/deactivate", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New(), "ADMIN")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.Deactivate(c)
	if err == nil {
		t.Fatal("expected error")
	}
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
