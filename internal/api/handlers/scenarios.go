package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-twin/internal/api/models"
	"inventory-twin/internal/scenario"
)

// ScenarioHandler handles scenario-related requests
type ScenarioHandler struct {
	effects scenario.Effects
	window  int
}

// NewScenarioHandler creates a new scenario handler reporting the engine's
// configured constants as defaults.
func NewScenarioHandler(effects scenario.Effects, window int) *ScenarioHandler {
	return &ScenarioHandler{effects: effects, window: window}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	e := h.effects
	scenarios := []models.ScenarioInfo{
		{
			Name:        "supply_cut",
			Description: "Supply disruption. Each period's change becomes -|change x (base + step x growth)|.",
			Parameters: []models.ParameterInfo{
				{Name: "supply_cut_base", Type: "float", Description: "Severity at the first simulated period", Default: e.SupplyCut.Base},
				{Name: "supply_cut_growth", Type: "float", Description: "Severity added per period", Default: e.SupplyCut.Growth},
			},
		},
		{
			Name:        "demand_spike",
			Description: "Demand surge, applied after any supply cut. change becomes -|change x (base + step x growth)|.",
			Parameters: []models.ParameterInfo{
				{Name: "demand_spike_base", Type: "float", Description: "Severity at the first simulated period", Default: e.DemandSpike.Base},
				{Name: "demand_spike_growth", Type: "float", Description: "Severity added per period", Default: e.DemandSpike.Growth},
			},
		},
		{
			Name:        "reserve_release",
			Description: "Strategic reserve release, added last as a fixed amount per period.",
			Parameters: []models.ParameterInfo{
				{Name: "release_per_period", Type: "float", Description: "Units added each period", Default: e.ReleasePerPeriod},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": scenarios,
		"engine": gin.H{
			"window":       h.window,
			"floor":        e.Floor,
			"cadence_days": int(e.Cadence.Hours() / 24),
		},
	})
}
