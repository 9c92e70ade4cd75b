package handlers

import (
	"net/http"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/model"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler handles scenario-related requests
type ScenarioHandler struct{}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler() *ScenarioHandler {
	return &ScenarioHandler{}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{
		{
			Name:        string(model.ScenarioNone),
			Description: "Base case only. Omit the scenario field or send an empty string.",
		},
		{
			Name:        string(model.ScenarioGridOutage),
			Description: "Adds a grid outage what-if: grid import is zero, reports excess energy and system uptime.",
		},
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}
