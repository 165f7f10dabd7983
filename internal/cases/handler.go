package cases

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/risk"
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
	rg.GET("/cases", h.list)
	rg.POST("/cases", h.create)
}

type createRequest struct {
	FileType  string `json:"type"`
	FileName  string `json:"fileName"`
	Summary   string `json:"summary"`
	RiskLevel string `json:"riskLevel"`
}

func (h *Handler) create(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "service unavailable", nil)
		return
	}
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "summary is required", nil)
		return
	}
	level := ""
	if strings.TrimSpace(req.RiskLevel) != "" {
		level = string(risk.ParseLevel(req.RiskLevel))
	}

	item, err := h.Svc.Record(c.Request.Context(), middleware.ClientID(c), req.FileType, req.FileName, req.Summary, level)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to record case", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, item)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "service unavailable", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), middleware.ClientID(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list case history", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}
