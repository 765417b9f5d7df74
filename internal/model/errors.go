package model

import (
	"errors"
	"time"
)

var (
	// ErrInsufficientData means the history is too short to derive a trend
	// (fewer than window points) or a drift (fewer than two trend points).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter means the scenario was rejected before any computation.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Reason is the machine-readable cause attached to a non-completed result.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInsufficientData Reason = "INSUFFICIENT_DATA"
	ReasonInvalidParameter Reason = "INVALID_PARAMETER"
)

// ReasonFor maps an engine error onto its Reason.
func ReasonFor(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInsufficientData):
		return ReasonInsufficientData
	case errors.Is(err, ErrInvalidParameter):
		return ReasonInvalidParameter
	default:
		return Reason("INTERNAL_ERROR")
	}
}

// WarningNonNumeric is raised for each observation dropped because its
// quantity was not a finite number.
const WarningNonNumeric = "NON_NUMERIC_OBSERVATION"

// Warning is a data-quality note that did not stop the run.
type Warning struct {
	Code    string    `json:"code"`
	Period  time.Time `json:"period"`
	Message string    `json:"message"`
}
