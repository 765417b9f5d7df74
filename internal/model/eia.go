package model

import "encoding/json"

// EIAResponse matches the JSON envelope of the EIA v2 API.
//
// Example:
// {
//   "response": {
//     "total": "1040",
//     "frequency": "weekly",
//     "data": [ ... ]
//   }
// }
type EIAResponse struct {
	Response EIAPayload `json:"response"`
}

type EIAPayload struct {
	Total     json.RawMessage `json:"total,omitempty"`
	Frequency string          `json:"frequency,omitempty"`
	Data      []EIARecord     `json:"data"`
}

// EIARecord is one row of the weekly stocks or spot price dataset.
// Value arrives as a string, a number or null depending on the series,
// so it is kept raw and parsed by the data package.
type EIARecord struct {
	Period      string          `json:"period"`
	AreaName    string          `json:"area-name"`
	Duoarea     string          `json:"duoarea,omitempty"`
	Product     string          `json:"product,omitempty"`
	ProductName string          `json:"product-name,omitempty"`
	Process     string          `json:"process,omitempty"`
	Series      string          `json:"series,omitempty"`
	SeriesDesc  string          `json:"series-description,omitempty"`
	Value       json.RawMessage `json:"value"`
	Units       string          `json:"units,omitempty"`
}
