package ingest

import "github.com/epeers/fundboard/internal/models"

// Fragments are the extractor outputs of one run. A nil fragment means the
// extract was absent (or empty) and the matching sections stay as they are.
type Fragments struct {
	Performance *PerformanceFragment
	Metrics     *MetricsFragment
	Ratios      *RatiosFragment
	Allocation  *AllocationFragment
	Liquidity   *LiquidityFragment
}

// Merge returns a copy of current with the fragments written in. Each field is
// overwritten only when its fragment carries a value; nothing outside the
// ingestion sections is touched, and current itself is never modified.
func Merge(current models.Document, f Fragments) (models.Document, error) {
	doc := current.Clone()
	m := merger{doc: &doc}

	if p := f.Performance; p != nil {
		m.set(p.Series, models.SectionPerformance)
		m.set(p.Current, models.SectionNAV, "current")
		m.set(p.LastUpdate, models.SectionLastUpdate)
	}

	if r := f.Ratios; r != nil {
		m.setIf(r.YTD, models.SectionNAV, "ytd")
		m.setIf(r.Inception, models.SectionNAV, "inception")
		m.setIf(r.MTD, models.SectionNAV, "mtd")
	}

	if mt := f.Metrics; mt != nil {
		m.setIf(mt.Volatility, models.SectionMetrics, "volatility")
		m.setIf(mt.MaxDrawdown, models.SectionMetrics, "maxDrawdown")
	}

	if a := f.Allocation; a != nil {
		m.set(a.Strategies, models.SectionAllocation, "strategies")
		m.set(a.Net, models.SectionAllocation, "exposure", "net")
	}

	if l := f.Liquidity; l != nil {
		m.set(l.History, models.SectionLiquidityHistory)
	}

	if m.err != nil {
		return models.Document{}, m.err
	}
	return doc, nil
}

// merger stops at the first failed write.
type merger struct {
	doc *models.Document
	err error
}

func (m *merger) set(v any, path ...string) {
	if m.err != nil {
		return
	}
	if err := m.doc.SetField(v, path...); err != nil {
		m.err = &DocumentError{Section: path[0], Err: err}
	}
}

func (m *merger) setIf(v *float64, path ...string) {
	if v != nil {
		m.set(*v, path...)
	}
}
