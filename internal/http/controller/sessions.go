package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/http/dto"
	"github.com/sayemkalim/casesync/internal/http/resp"
	"github.com/sayemkalim/casesync/internal/session"
	"github.com/sayemkalim/casesync/internal/timer"
)

func (h *Handler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "user_id required"})
		return
	}
	s := h.sessions.Create(req.UserID)
	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: s.ID, UserID: s.UserID})
}

func (h *Handler) CloseSession(c *gin.Context) {
	if !h.sessions.Close(c.Param("sid")) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "session not found"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "session closed"})
}

func (h *Handler) lookupSession(c *gin.Context) (*session.Session, bool) {
	s, ok := h.sessions.Get(c.Param("sid"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "session not found"})
		return nil, false
	}
	return s, true
}

// Navigate reports a route change; the session's timer evaluates its
// workstation transition from the new path.
func (h *Handler) Navigate(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	state := s.Timer.Navigate(c.Request.Context(), req.Path)
	c.JSON(http.StatusOK, state)
}

func (h *Handler) TimerState(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Timer.State())
}

func (h *Handler) timerAction(c *gin.Context, action func(*session.Session) timer.Result) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	result := action(s)
	c.JSON(http.StatusOK, dto.TimerActionResponse{
		Success: result.OK,
		Message: result.Message,
		State:   s.Timer.State(),
	})
}

func (h *Handler) TimerStart(c *gin.Context) {
	h.timerAction(c, func(s *session.Session) timer.Result {
		return s.Timer.Start(c.Request.Context())
	})
}

func (h *Handler) TimerPause(c *gin.Context) {
	h.timerAction(c, func(s *session.Session) timer.Result {
		return s.Timer.Pause(c.Request.Context())
	})
}

func (h *Handler) TimerResume(c *gin.Context) {
	h.timerAction(c, func(s *session.Session) timer.Result {
		return s.Timer.Resume(c.Request.Context())
	})
}

func (h *Handler) TimerReset(c *gin.Context) {
	h.timerAction(c, func(s *session.Session) timer.Result {
		return s.Timer.Reset(c.Request.Context())
	})
}

func (h *Handler) TimerExitFile(c *gin.Context) {
	h.timerAction(c, func(s *session.Session) timer.Result {
		return s.Timer.ExitFile(c.Request.Context())
	})
}

func (h *Handler) ListToasts(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	visible := s.Toasts.Visible()
	out := make([]dto.ToastResponse, 0, len(visible))
	for _, n := range visible {
		out = append(out, dto.ToastResponse{
			Notification: n,
			InFlight:     s.Toasts.InFlight(n.ID),
		})
	}
	c.JSON(http.StatusOK, dto.ToastListResponse{Toasts: out})
}

func (h *Handler) DismissToast(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	s.Toasts.Dismiss(c.Param("id"))
	c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "dismissed"})
}

func (h *Handler) RespondToast(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	var req dto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	err := s.Toasts.Respond(c.Request.Context(), c.Param("id"), req.Action)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.StatusResponse{Code: resp.CodeOK, Message: "response recorded"})
	case errors.Is(err, domain.ErrInvalidResponseAction):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "action must be accept or reject"})
	case errors.Is(err, domain.ErrResponseInFlight):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Code: resp.CodeConflict, Message: "response already in flight"})
	case errors.Is(err, domain.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to record response"})
	}
}
