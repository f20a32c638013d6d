// Package ingest turns a zip of fund CSV exports into an updated dashboard
// Document.
//
// A run has four stages: the archive is decompressed, each known extract is
// parsed into typed rows, extractors map the rows into Document fragments, and
// the fragments are merged into a copy of the current Document. Missing
// extracts and missing rows are not errors; they leave the matching fields as
// they were and are reported as warnings. An unreadable archive or extract
// aborts the run before anything is merged.
package ingest

import (
	"bytes"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/epeers/fundboard/internal/models"
)

// Result is the outcome of a successful run.
type Result struct {
	Document models.Document
	Extracts []string // extracts found, in processing order
	Warnings []models.Warning
}

// Run applies an archive to the current Document. It has no side effects
// beyond metrics: current is not modified and nothing is persisted.
func Run(archiveBytes []byte, current models.Document) (*Result, error) {
	start := time.Now()
	defer func() { runDurationHistogram.Observe(time.Since(start).Seconds()) }()

	result, err := run(archiveBytes, current)
	runsTotal.WithLabelValues(outcomeOf(err)).Inc()
	if err != nil {
		return nil, err
	}

	for _, name := range result.Extracts {
		extractsFoundTotal.WithLabelValues(name).Inc()
	}
	for _, w := range result.Warnings {
		warningsTotal.WithLabelValues(string(w.Code)).Inc()
	}
	log.WithFields(log.Fields{
		"extracts": len(result.Extracts),
		"warnings": len(result.Warnings),
	}).Debug("ingestion run complete")
	return result, nil
}

func run(archiveBytes []byte, current models.Document) (*Result, error) {
	archive, err := ReadArchive(archiveBytes)
	if err != nil {
		return nil, err
	}

	tables, found, err := LoadTables(archive)
	if err != nil {
		return nil, err
	}

	var warnings Warnings
	for _, name := range FileNames {
		if _, ok := tables[name]; !ok {
			warnings.add(models.WarnMissingExtract, "%s not found in archive", name)
		} else if tables[name].Len() == 0 {
			warnings.add(models.WarnEmptyExtract, "%s has no data rows", name)
		}
	}

	fragments, err := Extract(tables, &warnings)
	if err != nil {
		return nil, err
	}

	doc, err := Merge(current, fragments)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: doc,
		Extracts: found,
		Warnings: []models.Warning(warnings),
	}, nil
}

// LoadTables parses every known extract present in the archive.
func LoadTables(archive *Archive) (map[string]*Table, []string, error) {
	tables := make(map[string]*Table, len(FileNames))
	var found []string
	for _, name := range FileNames {
		entry, ok := archive.Find(name)
		if !ok {
			continue
		}
		log.Debugf("reading %s from archive entry %q", name, entry.Name)
		t, err := ParseTable(name, bytes.NewReader(entry.Content))
		if err != nil {
			return nil, nil, err
		}
		tables[name] = t
		found = append(found, name)
	}
	return tables, found, nil
}

// Extract runs every extractor over the parsed tables. The extractors are
// independent except liquidity, which needs both balance and NAV rows.
func Extract(tables map[string]*Table, w *Warnings) (Fragments, error) {
	navs, err := NAVRecords(tables[FileNAV])
	if err != nil {
		return Fragments{}, err
	}

	liquidity, err := ExtractLiquidity(tables[FileBalance], navs, w)
	if err != nil {
		return Fragments{}, err
	}

	return Fragments{
		Performance: ExtractPerformance(navs),
		Metrics:     ExtractMetrics(tables[FileMetrics], w),
		Ratios:      ExtractRatios(tables[FileRatios], w),
		Allocation:  ExtractAllocation(tables[FileAllocation], w),
		Liquidity:   liquidity,
	}, nil
}

func outcomeOf(err error) string {
	var (
		archiveErr *ArchiveReadError
		parseErr   *ParseError
	)
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &archiveErr):
		return outcomeArchiveError
	case errors.As(err, &parseErr):
		return outcomeParseError
	default:
		return outcomeDocumentError
	}
}
