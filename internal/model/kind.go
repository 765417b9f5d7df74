package model

// Kind tags which segment of the combined output a point belongs to.
// Keep these values stable; they are used in CSV and JSON output.
type Kind string

const (
	KindHistorical Kind = "Historical"
	KindTrendline  Kind = "Trendline"
	KindSimulated  Kind = "Simulated"
)

// Kinds lists the segments in composition order.
func Kinds() []Kind {
	return []Kind{KindHistorical, KindTrendline, KindSimulated}
}
