package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/config"
	"nzeb-model/internal/data"
	"nzeb-model/internal/metrics"
	"nzeb-model/internal/simulation"
	"nzeb-model/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	transportHTTP      = "http"
	transportWebSocket = "websocket"
)

// SimulateHandler handles model runs
type SimulateHandler struct {
	engine     *simulation.Engine
	presets    *data.PresetCache
	runs       *store.Store
	defaultSOC float64
}

// NewSimulateHandler creates a new simulate handler. presets and runs may be nil,
// which disables battery presets and run history respectively.
func NewSimulateHandler(engine *simulation.Engine, presets *data.PresetCache, runs *store.Store, defaultSOC float64) *SimulateHandler {
	models.RegisterValidation()
	return &SimulateHandler{
		engine:     engine,
		presets:    presets,
		runs:       runs,
		defaultSOC: defaultSOC,
	}
}

// Simulate handles POST /api/nzeb_model and POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ObserveSimulation(transportHTTP, metrics.OutcomeInvalidRequest, 0)
		apiErr := requestError(err)
		c.JSON(apiErr.Status, apiErr.Body)
		return
	}

	resp, apiErr := h.run(&req, transportHTTP)
	if apiErr != nil {
		c.JSON(apiErr.Status, apiErr.Body)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// run executes one validated request. Every call builds its own model state.
func (h *SimulateHandler) run(req *models.SimulateRequest, transport string) (*models.SimulateResponse, *apiError) {
	var preset *config.BatteryConfig
	if name := req.BatteryInputs.Preset; name != "" {
		if h.presets == nil {
			metrics.ObserveSimulation(transport, metrics.OutcomeInputError, 0)
			return nil, newAPIError(http.StatusBadRequest, CodeInvalidInput, "Invalid input data: battery presets are not configured")
		}
		p, err := h.presets.Get(name)
		if err != nil {
			metrics.ObserveSimulation(transport, metrics.OutcomeInputError, 0)
			return nil, newAPIError(http.StatusBadRequest, CodeInvalidInput, "Invalid input data: battery_inputs.preset: "+err.Error())
		}
		preset = &p.Battery
	}

	in := req.ToInputs(preset, h.defaultSOC)

	start := time.Now()
	res, err := h.engine.Run(in)
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeComputationError
		if simulation.IsInputError(err) {
			outcome = metrics.OutcomeInputError
		} else {
			log.Error().Err(err).Str("component", "simulate").Str("transport", transport).Msg("model run failed")
		}
		metrics.ObserveSimulation(transport, outcome, elapsed)
		return nil, runError(err)
	}
	metrics.ObserveSimulation(transport, metrics.OutcomeOK, elapsed)
	metrics.GeneratedEnergy.Observe(res.Generation.TotalKWh)

	resp := models.NewSimulateResponse(uuid.NewString(), res)
	h.record(req, &resp)
	return &resp, nil
}

// record stores the exchange in run history. Failures are logged, not returned:
// the run itself succeeded.
func (h *SimulateHandler) record(req *models.SimulateRequest, resp *models.SimulateResponse) {
	if h.runs == nil {
		return
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		log.Warn().Err(err).Str("run_id", resp.ID).Msg("encode request for run history")
		return
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Str("run_id", resp.ID).Msg("encode response for run history")
		return
	}
	run := &store.StoredRun{
		ID:       resp.ID,
		Scenario: req.Scenario,
		Request:  string(reqJSON),
		Response: string(respJSON),
	}
	if err := h.runs.Save(run); err != nil {
		log.Warn().Err(err).Str("run_id", resp.ID).Msg("save run history")
	}
}
