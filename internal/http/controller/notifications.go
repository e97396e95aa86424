package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/feed"
	"github.com/sayemkalim/casesync/internal/http/dto"
	"github.com/sayemkalim/casesync/internal/http/resp"
	"github.com/sayemkalim/casesync/internal/notifier"
	"github.com/sayemkalim/casesync/internal/queue"
	"github.com/sayemkalim/casesync/internal/service/notify"
	"github.com/sayemkalim/casesync/internal/session"
	"go.uber.org/zap"
)

type Handler struct {
	cfg      *config.Config
	svc      *notify.Service
	center   *notifier.Center
	hub      *feed.Hub
	sessions *session.Manager
	pub      queue.Publisher
	log      *zap.Logger
}

func NewHandler(cfg *config.Config, svc *notify.Service, center *notifier.Center, hub *feed.Hub, sessions *session.Manager, publisher queue.Publisher, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		svc:      svc,
		center:   center,
		hub:      hub,
		sessions: sessions,
		pub:      publisher,
		log:      logger,
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	limit := h.cfg.HistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	history, err := h.svc.ListHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{Notifications: history})
}

func (h *Handler) ListLiveNotifications(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	c.JSON(http.StatusOK, dto.NotificationListResponse{Notifications: h.center.List(userID)})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	count, err := h.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.MarkRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "marked read"})
}

func (h *Handler) MarkManyRead(c *gin.Context) {
	var req dto.MarkManyReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "ids required"})
		return
	}
	if err := h.svc.MarkManyRead(c.Request.Context(), req.IDs); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "marked read"})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	if err := h.svc.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "marked read"})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to delete notification"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "deleted"})
}

func (h *Handler) DeleteAllNotifications(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	if err := h.svc.DeleteAll(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to delete notifications"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "deleted"})
}

// RespondNotification handles the accept/reject decision for an action-type
// notification.
func (h *Handler) RespondNotification(c *gin.Context) {
	var req dto.NotificationResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "id required"})
		return
	}
	if err := h.svc.Respond(c.Request.Context(), req.ID, req.Action); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidResponseAction):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "action must be accept or reject"})
		case errors.Is(err, domain.ErrNotificationNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to record response"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "response recorded"})
}

// PublishNotification pushes a raw frame onto the broker so it flows through
// the same ingest pipeline as upstream events.
func (h *Handler) PublishNotification(c *gin.Context) {
	var req dto.PublishNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.UserID == "" || req.ID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id, id, message are required"})
		return
	}
	if req.Type != "" && !domain.IsValidNotificationType(req.Type) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type must be one of: action, success, info, default"})
		return
	}

	payload, err := json.Marshal(map[string]string{
		"notificationId": req.ID,
		"user_id":        req.UserID,
		"type":           req.Type,
		"name":           req.Name,
		"message":        req.Message,
		"profile":        req.Profile,
		"event":          notifier.EventMessageSent,
	})
	if err != nil {
		h.log.Error("publish payload marshal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish notification"})
		return
	}

	prefix := h.cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "user"
	}
	routingKey := prefix + "." + req.UserID
	if err := h.pub.Publish(c.Request.Context(), payload, routingKey); err != nil {
		h.log.Error("publish notification failed",
			zap.String("user_id", req.UserID),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to publish notification"})
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Code: resp.CodeQueued, Message: "queued"})
}
