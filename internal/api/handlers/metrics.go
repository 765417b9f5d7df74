package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// simulationsTotal counts pipeline runs.
	// Labels: status (completed, insufficient_data, invalid_parameter), source (request, eia, compare)
	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory_twin",
		Subsystem: "simulation",
		Name:      "runs_total",
		Help:      "Total simulation runs by outcome",
	}, []string{"status", "source"})

	// simulationCacheHits counts runs answered from the result cache.
	simulationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory_twin",
		Subsystem: "simulation",
		Name:      "cache_hits_total",
		Help:      "Simulation results served from cache",
	})

	// droppedObservations counts observations rejected as non-numeric.
	droppedObservations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory_twin",
		Subsystem: "simulation",
		Name:      "dropped_observations_total",
		Help:      "Observations dropped because the quantity was not a finite number",
	})

	// upstreamErrors counts EIA failures by error code.
	upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory_twin",
		Subsystem: "eia",
		Name:      "errors_total",
		Help:      "EIA upstream errors by code",
	}, []string{"code"})
)
