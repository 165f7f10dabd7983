package evidence

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/cases"
	"github.com/Bridgette013/Truthseeker/internal/journal"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/middleware"
	"github.com/Bridgette013/Truthseeker/internal/shared/server/respond"
	"github.com/Bridgette013/Truthseeker/internal/shared/storage/object"
	"github.com/Bridgette013/Truthseeker/internal/shared/telemetry"
)

// historyFetchLimit bounds how much case history a report can draw from.
const historyFetchLimit = 500

type Handler struct {
	Cases   *cases.Service
	Journal *journal.Service
	Store   object.ObjectStore
}

func NewHandler(caseSvc *cases.Service, journalSvc *journal.Service, store object.ObjectStore) *Handler {
	return &Handler{Cases: caseSvc, Journal: journalSvc, Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/evidence", h.listEvidence)
	rg.POST("/reports", h.createReport)
}

// listEvidence returns every item available for report selection.
func (h *Handler) listEvidence(c *gin.Context) {
	clientID := middleware.ClientID(c)
	items, err := h.collect(c, clientID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to collect evidence", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

type createReportInput struct {
	ItemIDs           []string `json:"itemIds"`
	OverallAssessment string   `json:"overallAssessment"`
}

func (h *Handler) createReport(c *gin.Context) {
	var in createReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}

	clientID := middleware.ClientID(c)
	items, err := h.collect(c, clientID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to collect evidence", nil)
		return
	}

	if len(in.ItemIDs) > 0 {
		items = filterByID(items, in.ItemIDs)
	}
	if len(items) == 0 {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no evidence items selected", nil)
		return
	}

	now := time.Now().UTC()
	pkg := Compile(NewCaseID(now), items, strings.TrimSpace(in.OverallAssessment), now)

	html, err := Render(pkg)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render report", nil)
		return
	}

	fileName := ExportFileName(pkg.CaseID)
	storageKey := ""
	if h.Store != nil {
		key, _, _, err := h.Store.Save(c.Request.Context(), clientID, fileName, strings.NewReader(html))
		if err != nil {
			// The rendered report is still returned; only the archived copy failed.
			telemetry.Warn("report archive failed", map[string]any{
				"case_id": pkg.CaseID,
				"error":   err.Error(),
			})
		} else {
			storageKey = key
		}
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"caseId":      pkg.CaseID,
		"generatedAt": pkg.GeneratedAt,
		"fileName":    fileName,
		"storageKey":  storageKey,
		"stats":       pkg.Stats,
		"timeline":    pkg.Timeline,
		"html":        html,
	})
}

func (h *Handler) collect(c *gin.Context, clientID string) ([]Item, error) {
	history, err := h.Cases.List(c.Request.Context(), clientID, historyFetchLimit, 0)
	if err != nil {
		return nil, err
	}
	entries, err := h.Journal.List(c.Request.Context(), clientID)
	if err != nil {
		return nil, err
	}
	// List returns newest first; positional ids must follow insertion order
	// so an existing id keeps pointing at the same scan as history grows.
	oldestFirst(history)
	return BuildItems(history, entries, time.Now().UTC()), nil
}

func oldestFirst(history []cases.CaseHistoryItem) {
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
}

func filterByID(items []Item, ids []string) []Item {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []Item{}
	for _, item := range items {
		if wanted[item.ID] {
			out = append(out, item)
		}
	}
	return out
}
