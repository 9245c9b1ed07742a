package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/domain"
	"github.com/sarmadarshad321/Scd-Project-Book-Sphere-sub001/internal/core/ports"
)

// NotificationHandler handles HTTP requests for user notifications.
type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the authenticated user's notifications, newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     bool  false  "Only unread notifications"
// @Success      200     {array}   domain.Notification
// @Failure      401     {object}  map[string]string
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	unreadOnly, _ := strconv.ParseBool(c.QueryParam("unread"))
	list, err := h.notifications.ListForUser(c.Request().Context(), userID, unreadOnly)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead flags one of the authenticated user's notifications as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  domain.Notification
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	n, err := h.notifications.MarkRead(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}
