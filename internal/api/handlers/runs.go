package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// RunHandler serves stored run history
type RunHandler struct {
	runs *store.Store
}

// NewRunHandler creates a new run handler. A nil store disables the endpoints.
func NewRunHandler(runs *store.Store) *RunHandler {
	return &RunHandler{runs: runs}
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, models.NewErrorResponse(CodeNotFound, "run history is disabled"))
		return
	}

	run, err := h.runs.Get(c.Param("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, models.NewErrorResponse(CodeNotFound, "run not found"))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("component", "runs").Msg("load run")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse(CodeInternalError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, toRunInfo(*run))
}

// ListRuns handles GET /api/v1/runs?limit=N
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs := []models.RunInfo{}
	if h.runs == nil {
		c.JSON(http.StatusOK, gin.H{"runs": runs})
		return
	}

	limit := defaultRunLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, models.NewErrorResponse(CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxRunLimit)
	}

	stored, err := h.runs.Recent(limit)
	if err != nil {
		log.Error().Err(err).Str("component", "runs").Msg("list runs")
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse(CodeInternalError, err.Error()))
		return
	}
	for _, r := range stored {
		runs = append(runs, toRunInfo(r))
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func toRunInfo(r store.StoredRun) models.RunInfo {
	return models.RunInfo{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Scenario:  r.Scenario,
		Request:   rawJSON(r.Request),
		Response:  rawJSON(r.Response),
	}
}

// rawJSON keeps stored documents as-is; empty or corrupt ones become null.
func rawJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
