package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/session"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/middleware"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses/:surface", h.snapshot)
	rg.DELETE("/analyses/:surface", h.abandon)
}

type createRequest struct {
	RunInput
	Stream *bool `json:"stream"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if req.Surface != "" {
		c.Set("surface", req.Surface)
	}

	clientID := middleware.ClientID(c)
	events, err := h.Svc.Start(c.Request.Context(), clientID, req.RunInput)
	if err != nil {
		h.startError(c, err)
		return
	}

	if req.Stream == nil || *req.Stream {
		h.stream(c, clientID, req.RunInput, events)
		return
	}
	h.blockUntilDone(c, clientID, req.RunInput, events)
}

func (h *Handler) startError(c *gin.Context, err error) {
	switch {
	case IsQuotaErr(err):
		respond.Error(c, http.StatusTooManyRequests, "QUOTA_EXCEEDED", err.Error(), nil)
	case errors.Is(err, session.ErrSurfaceBusy):
		respond.Error(c, http.StatusConflict, "SURFACE_BUSY", "an analysis is already running on this surface", nil)
	case errors.Is(err, gateway.ErrInvalidRequest):
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), nil)
	}
}

// stream relays lifecycle events over SSE. Fragment events carry the
// chunk and its sequence number; the terminal event carries the full
// result or the error with any partial output.
func (h *Handler) stream(c *gin.Context, clientID string, in RunInput, events <-chan session.Event) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-store")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		switch ev.Type {
		case session.EventFragment:
			c.SSEvent("fragment", gin.H{"seq": ev.Seq, "text": ev.Text})
		case session.EventComplete:
			result := h.Svc.Finish(c.Request.Context(), clientID, in, ev)
			c.SSEvent("complete", result)
			return false
		case session.EventFailed:
			c.SSEvent("failed", gin.H{"error": ev.Err, "partial": ev.Partial})
			return false
		}
		return true
	})
}

// blockUntilDone drains the run and answers with a single JSON body.
func (h *Handler) blockUntilDone(c *gin.Context, clientID string, in RunInput, events <-chan session.Event) {
	for ev := range events {
		switch ev.Type {
		case session.EventComplete:
			respond.OK(c, h.Svc.Finish(c.Request.Context(), clientID, in, ev))
			return
		case session.EventFailed:
			status := http.StatusBadGateway
			code := "UPSTREAM_ERROR"
			if strings.Contains(ev.Err, "quota") {
				status = http.StatusTooManyRequests
				code = "QUOTA_EXCEEDED"
			}
			respond.Error(c, status, code, ev.Err, map[string]any{"partial": ev.Partial})
			return
		}
	}
	respond.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "analysis ended without a result", nil)
}

func (h *Handler) snapshot(c *gin.Context) {
	surface := session.Surface(c.Param("surface"))
	respond.OK(c, h.Svc.Ctrl.Snapshot(surface))
}

func (h *Handler) abandon(c *gin.Context) {
	h.Svc.Ctrl.Abandon(session.Surface(c.Param("surface")))
	c.Status(http.StatusNoContent)
}
