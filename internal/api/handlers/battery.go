package handlers

import (
	"net/http"
	"strconv"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BatteryHandler handles battery-related requests
type BatteryHandler struct {
	presets *data.PresetCache
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler(presets *data.PresetCache) *BatteryHandler {
	return &BatteryHandler{presets: presets}
}

// ListBatteries handles GET /api/v1/batteries
// ?refresh=true drops the cached listing and re-reads the preset directory.
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}
	if h.presets == nil {
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		h.presets.Clear()
		log.Info().Str("component", "battery").Str("dir", h.presets.Dir()).Msg("battery preset cache cleared")
	}

	presets, err := h.presets.List()
	if err != nil {
		// A missing preset directory is not an error for clients.
		log.Warn().Err(err).Str("component", "battery").Str("dir", h.presets.Dir()).Msg("read battery presets")
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, p := range presets {
		batteries = append(batteries, models.BatteryInfo{
			ID:   p.ID,
			Name: p.DisplayName(),
			File: p.File,
			Specs: models.BatterySpecs{
				CapacityKWh:         p.Battery.CapacityKWh,
				ChargeEfficiency:    p.Battery.ChargeEfficiency,
				DischargeEfficiency: p.Battery.DischargeEfficiency,
				InitialSOC:          p.Battery.InitialSOC,
			},
		})
	}

	log.Debug().Str("component", "battery").Int("count", len(batteries)).Msg("listing battery presets")
	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}
