package journal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.GET("/journal", h.list)
	rg.POST("/journal", h.create)
	rg.GET("/journal/:id", h.get)
	rg.PUT("/journal/:id", h.update)
	rg.DELETE("/journal/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list journal entries", nil)
		return
	}
	respond.OK(c, gin.H{"items": entries})
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	entry, err := h.Svc.Create(c.Request.Context(), middleware.ClientID(c), in)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, entry)
}

func (h *Handler) get(c *gin.Context) {
	entry, err := h.Svc.Get(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load journal entry", nil)
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) update(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	entry, err := h.Svc.Update(c.Request.Context(), middleware.ClientID(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "journal entry not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete journal entry", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
