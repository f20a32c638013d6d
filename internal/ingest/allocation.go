package ingest

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/epeers/fundboard/internal/models"
)

// asset_class_exposure.csv columns. Older exports name the exposure column
// "exposure_fraction".
const colAssetClass = "asset_class"

var exposureColumns = []string{"exposure %", "exposure_fraction"}

// AllocationFragment is the strategy breakdown and the net exposure.
type AllocationFragment struct {
	Strategies []models.Strategy
	Net        float64
}

// AllocationRange formats the band shown next to an allocation slice.
//
// The band is a fixed presentation heuristic, five points either side of the
// value. It is not a confidence interval.
func AllocationRange(value float64) string {
	return fmt.Sprintf("%d-%d%%", int(math.Floor(value-5)), int(math.Ceil(value+5)))
}

// ExtractAllocation turns exposure fractions into strategy slices sorted by
// value, largest first. Slices at or below zero after rounding are dropped.
// Net is the rounded sum of the kept slices. Gross, bias and the liquidity
// descriptor cannot be derived from this extract and are not produced.
func ExtractAllocation(t *Table, w *Warnings) *AllocationFragment {
	if t.Len() == 0 {
		return nil
	}

	strategies := make([]models.Strategy, 0, len(t.Records))
	total := decimal.Zero
	for _, r := range t.Records {
		name := r.Get(colAssetClass).String()

		exposure, ok := exposureOf(r)
		if !ok {
			w.add(models.WarnNonNumericValue, "%s: row %d: exposure of %q is not a number", t.Name, r.Line, name)
			continue
		}

		value := ToPercent(exposure, 1)
		if value <= 0 {
			w.add(models.WarnNonPositiveHolding, "%s: row %d: %q has exposure %v, dropped", t.Name, r.Line, name, value)
			continue
		}

		strategies = append(strategies, models.Strategy{
			Name:  name,
			Value: value,
			Range: AllocationRange(value),
		})
		total = total.Add(decimal.NewFromFloat(value))
	}

	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].Value > strategies[j].Value
	})

	return &AllocationFragment{
		Strategies: strategies,
		Net:        total.Round(1).InexactFloat64(),
	}
}

func exposureOf(r Record) (float64, bool) {
	for _, col := range exposureColumns {
		if r.Has(col) {
			return r.Get(col).Float()
		}
	}
	return 0, false
}
