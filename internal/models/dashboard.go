package models

// Point is one dated value of a chart series (performance, liquidity).
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Strategy is one allocation slice shown in the portfolio section.
// Range is a display band around Value, see ingest.AllocationRange.
type Strategy struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Range string  `json:"range"`
}

// NAVSummary is the typed view of the "nav" section.
type NAVSummary struct {
	Current   float64 `json:"current"`
	MTD       float64 `json:"mtd"`
	YTD       float64 `json:"ytd"`
	Inception float64 `json:"inception"`
}

// RiskMetrics is the typed view of the fields of "metrics" that ingestion writes.
type RiskMetrics struct {
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// Allocation is the typed view of the fields of "allocation" that ingestion writes.
type Allocation struct {
	Strategies []Strategy `json:"strategies"`
	Exposure   struct {
		Net float64 `json:"net"`
	} `json:"exposure"`
}
