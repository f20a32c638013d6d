package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/util"
)

// nav.csv columns
const (
	colNAVDate = "date"
	colNAV     = "estimated_nav"
)

// NAVRecord is one row of nav.csv.
type NAVRecord struct {
	Timestamp time.Time
	Raw       string // timestamp text as exported
	NAV       float64
}

// Date returns the calendar date of the record.
func (r NAVRecord) Date() string {
	return util.DateOnly(r.Timestamp)
}

// NAVRecords reads nav.csv rows sorted by timestamp, oldest first. Rows
// sharing a timestamp keep their file order. A row whose date or NAV cannot be
// read fails the whole table.
func NAVRecords(t *Table) ([]NAVRecord, error) {
	if t == nil {
		return nil, nil
	}

	records := make([]NAVRecord, 0, len(t.Records))
	for _, r := range t.Records {
		raw := r.Get(colNAVDate)
		if raw.IsNull() {
			return nil, &ParseError{Extract: t.Name, Row: r.Line, Err: errors.New("missing date")}
		}
		ts, err := util.ParseTimestamp(raw.String())
		if err != nil {
			return nil, &ParseError{Extract: t.Name, Row: r.Line, Err: err}
		}
		nav, ok := r.Get(colNAV).Float()
		if !ok {
			return nil, &ParseError{Extract: t.Name, Row: r.Line, Err: fmt.Errorf("invalid %s %q", colNAV, r.Get(colNAV).String())}
		}
		records = append(records, NAVRecord{
			Timestamp: ts,
			Raw:       strings.TrimSpace(raw.String()),
			NAV:       nav,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

// PerformanceFragment carries the NAV series and the latest NAV snapshot.
type PerformanceFragment struct {
	Series     []models.Point
	Current    float64
	LastUpdate string
}

// ExtractPerformance maps sorted NAV records to the performance chart series.
// The latest record is the current NAV and its full timestamp the lastUpdate.
// Period returns (MTD, YTD, inception) come from performance_ratio.csv, not
// from this series.
func ExtractPerformance(records []NAVRecord) *PerformanceFragment {
	if len(records) == 0 {
		return nil
	}

	series := make([]models.Point, len(records))
	for i, r := range records {
		series[i] = models.Point{Date: r.Date(), Value: r.NAV}
	}

	last := records[len(records)-1]
	return &PerformanceFragment{
		Series:     series,
		Current:    last.NAV,
		LastUpdate: last.Raw,
	}
}
