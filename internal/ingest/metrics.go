package ingest

import "github.com/epeers/fundboard/internal/models"

// Row labels read from metrics.csv.
const (
	MetricVolatility  = "Annualized Volatility"
	MetricMaxDrawdown = "Max Drawdown"
)

// Row labels read from performance_ratio.csv. "% 1M" stands in for
// month-to-date; the export has no true MTD row.
const (
	RatioYTD       = "% YTD"
	RatioInception = "From Inception"
	RatioMTD       = "% 1M"
)

// MetricsFragment holds the risk metrics found in metrics.csv.
// A nil field leaves the current Document value in place.
type MetricsFragment struct {
	Volatility  *float64
	MaxDrawdown *float64
}

// RatiosFragment holds the period returns found in performance_ratio.csv.
// A nil field leaves the current Document value in place.
type RatiosFragment struct {
	YTD       *float64
	Inception *float64
	MTD       *float64
}

// ExtractMetrics reads volatility and max drawdown as percentages.
func ExtractMetrics(t *Table, w *Warnings) *MetricsFragment {
	if t.Len() == 0 {
		return nil
	}
	return &MetricsFragment{
		Volatility:  lookupPercent(t, MetricVolatility, w),
		MaxDrawdown: lookupPercent(t, MetricMaxDrawdown, w),
	}
}

// ExtractRatios reads YTD, since-inception and one-month returns as percentages.
func ExtractRatios(t *Table, w *Warnings) *RatiosFragment {
	if t.Len() == 0 {
		return nil
	}
	return &RatiosFragment{
		YTD:       lookupPercent(t, RatioYTD, w),
		Inception: lookupPercent(t, RatioInception, w),
		MTD:       lookupPercent(t, RatioMTD, w),
	}
}

func lookupPercent(t *Table, label string, w *Warnings) *float64 {
	v, ok := LabelLookup.Value(t, label)
	if !ok {
		w.add(models.WarnMissingMetricRow, "%s: no row %q", t.Name, label)
		return nil
	}
	if v.IsNull() {
		w.add(models.WarnNonNumericValue, "%s: row %q has no value", t.Name, label)
		return nil
	}
	f, ok := v.Float()
	if !ok {
		w.add(models.WarnNonNumericValue, "%s: row %q value %q is not a number", t.Name, label, v.String())
		return nil
	}
	pct := ToPercent(f, 2)
	return &pct
}
