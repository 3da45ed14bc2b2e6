package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/knitworks/garment_mgmt_app/internal/core/ports/services"
	"github.com/knitworks/garment_mgmt_app/internal/dto"
)

// notificationHandler handles HTTP requests for in-app notifications.
type notificationHandler struct {
	notifier portssvc.NotifierSvc
}

func newNotificationHandler(n portssvc.NotifierSvc) *notificationHandler {
	return &notificationHandler{notifier: n}
}

// registerNotificationRoutes registers routes related to notifications.
func registerNotificationRoutes(rg *gin.RouterGroup, notifier portssvc.NotifierSvc) {
	h := newNotificationHandler(notifier)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:id/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	notifications, err := h.notifier.ListForUser(c.Request.Context(), actor, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to list notifications")
		return
	}

	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, dto.ToNotificationResponse(n))
	}
	c.JSON(http.StatusOK, resp)
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.notifier.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}
