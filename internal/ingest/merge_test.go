package ingest

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epeers/fundboard/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestMerge_NoFragmentsKeepsDocument(t *testing.T) {
	current := parseDocument(t, fixtureDocument)

	merged, err := Merge(current, Fragments{})
	require.NoError(t, err)

	for _, key := range current.Keys() {
		want, _ := current.Section(key)
		got, ok := merged.Section(key)
		require.True(t, ok, key)
		assert.Equal(t, string(want), string(got), key)
	}
}

func TestMerge_UpdateIfPresent(t *testing.T) {
	current := parseDocument(t, fixtureDocument)

	merged, err := Merge(current, Fragments{
		Metrics: &MetricsFragment{Volatility: ptr(15.23)},
		Ratios:  &RatiosFragment{YTD: ptr(4.56)},
	})
	require.NoError(t, err)

	var metrics map[string]float64
	_, err = merged.DecodeSection(models.SectionMetrics, &metrics)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"volatility": 15.23, "maxDrawdown": -9.1, "sharpe": 1.1}, metrics)

	var nav models.NAVSummary
	_, err = merged.DecodeSection(models.SectionNAV, &nav)
	require.NoError(t, err)
	assert.Equal(t, models.NAVSummary{Current: 95.2, MTD: 0.5, YTD: 4.56, Inception: 70.0}, nav)
}

func TestMerge_AllocationKeepsOtherExposureFields(t *testing.T) {
	current := parseDocument(t, fixtureDocument)

	merged, err := Merge(current, Fragments{
		Allocation: &AllocationFragment{
			Strategies: []models.Strategy{{Name: "D", Value: 45, Range: "40-50%"}},
			Net:        45,
		},
	})
	require.NoError(t, err)

	var allocation struct {
		Strategies []models.Strategy `json:"strategies"`
		Exposure   map[string]any    `json:"exposure"`
		Geo        json.RawMessage   `json:"geo"`
	}
	_, err = merged.DecodeSection(models.SectionAllocation, &allocation)
	require.NoError(t, err)

	assert.Equal(t, []models.Strategy{{Name: "D", Value: 45, Range: "40-50%"}}, allocation.Strategies)
	assert.Equal(t, map[string]any{"net": 45.0, "gross": 140.0, "bias": "Long", "liquidity": "Daily"}, allocation.Exposure)
	assert.JSONEq(t, `[{"name": "Europe", "value": 60}]`, string(allocation.Geo))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	current := parseDocument(t, fixtureDocument)
	before, err := current.Encode()
	require.NoError(t, err)

	_, err = Merge(current, Fragments{
		Performance: &PerformanceFragment{Series: []models.Point{{Date: "2024-03-01", Value: 1}}, Current: 1, LastUpdate: "2024-03-01"},
		Liquidity:   &LiquidityFragment{History: []models.Point{}},
	})
	require.NoError(t, err)

	after, err := current.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestMerge_CreatesMissingSections(t *testing.T) {
	merged, err := Merge(models.NewDocument(), Fragments{
		Ratios:     &RatiosFragment{MTD: ptr(1.5)},
		Allocation: &AllocationFragment{Strategies: []models.Strategy{}, Net: 0},
	})
	require.NoError(t, err)

	out, err := json.Marshal(merged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nav":{"mtd":1.5},"allocation":{"strategies":[],"exposure":{"net":0}}}`, string(out))
}

func TestMerge_WrongShapeIsDocumentError(t *testing.T) {
	current := parseDocument(t, `{"nav": [1, 2, 3]}`)

	_, err := Merge(current, Fragments{Ratios: &RatiosFragment{YTD: ptr(1)}})
	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, models.SectionNAV, docErr.Section)
	assert.True(t, errors.Is(err, models.ErrNotObject))
}
