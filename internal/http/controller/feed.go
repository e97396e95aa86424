package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sayemkalim/casesync/internal/feed"
	"github.com/sayemkalim/casesync/internal/http/dto"
	"github.com/sayemkalim/casesync/internal/http/resp"
	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

// Feed streams a user's notification events over SSE: a replay of recent
// history, then live inserts and alert directives.
func (h *Handler) Feed(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user id required"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	limit := h.cfg.HistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}

	if limit > 0 {
		history, err := h.svc.ListHistory(c.Request.Context(), userID, limit)
		if err != nil {
			h.log.Error("feed history replay failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			for i := len(history) - 1; i >= 0; i-- {
				if err := writeNotificationEvent(c.Writer, history[i]); err != nil {
					h.log.Error("feed history write failed", zap.String("user_id", userID), zap.Error(err))
					return
				}
			}
			flusher.Flush()
		}
	}

	client := &feed.Client{
		UserID: userID,
		Ch:     make(chan feed.Event, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("feed heartbeat write failed", zap.String("user_id", userID), zap.Error(err))
				return
			}
			flusher.Flush()
		case event, ok := <-client.Ch:
			if !ok {
				return
			}
			if err := writeFeedEvent(c.Writer, event); err != nil {
				h.log.Error("feed event write failed", zap.String("user_id", userID), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeNotificationEvent(w http.ResponseWriter, notification model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: notification\ndata: %s\n\n", notification.ID, payload)
	return err
}

// SSE frame mapping:
// - event: "notification" carries a canonical list insert, id set to the
//   notification id
// - event: "alert" carries a side-effect directive (sound/desktop)
func writeFeedEvent(w http.ResponseWriter, event feed.Event) error {
	switch event.Kind {
	case feed.EventNotification:
		if event.Notification == nil {
			return nil
		}
		return writeNotificationEvent(w, *event.Notification)
	case feed.EventAlert:
		payload, err := json.Marshal(event.Alert)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "event: alert\ndata: %s\n\n", payload)
		return err
	default:
		return nil
	}
}
