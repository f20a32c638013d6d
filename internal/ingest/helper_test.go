package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/epeers/fundboard/internal/models"
)

// zipFile is one archive entry; entries are written in slice order.
type zipFile struct {
	name    string
	content string
}

func buildArchive(t *testing.T, files ...zipFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		if strings.HasSuffix(f.name, "/") {
			_, err := zw.Create(f.name)
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func parseTable(t *testing.T, name, content string) *Table {
	t.Helper()
	table, err := ParseTable(name, strings.NewReader(content))
	require.NoError(t, err)
	return table
}

func parseDocument(t *testing.T, content string) models.Document {
	t.Helper()
	doc, err := models.ParseDocument([]byte(content))
	require.NoError(t, err)
	return doc
}

func hasWarning(warnings []models.Warning, code models.WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

const (
	fixtureNAV = `date,estimated_nav,returns
2024-03-02 00:00:00,101.5,0.015
2024-03-01 00:00:00,100.0,
2024-02-29 00:00:00,99.0,
`
	fixtureMetrics = `,value
Annualized Volatility,0.15234
Max Drawdown,-0.0825
Sharpe Ratio,1.3
`
	fixtureRatios = `,value
% 1M,0.0123
% YTD,0.0456
From Inception,0.789
`
	fixtureAllocation = `asset_class,exposure %
A,0.30
B,-0.05
C,0.0
D,0.45
`
	fixtureBalance = `timestamp,EUR,USD
2024-03-01 00:00:00,10.0,5.0
2024-03-02 00:00:00,20.3,
2024-03-05 00:00:00,1,1
`

	fixtureDocument = `{
  "lastUpdate": "2024-01-31 00:00:00",
  "nav": {"current": 95.2, "mtd": 0.5, "ytd": 1.1, "inception": 70.0},
  "performance": [{"date": "2024-01-31", "value": 95.2}],
  "metrics": {"volatility": 12.5, "maxDrawdown": -9.1, "sharpe": 1.1},
  "allocation": {
    "strategies": [{"name": "Old", "value": 100, "range": "95-105%"}],
    "exposure": {"net": 100, "gross": 140, "bias": "Long", "liquidity": "Daily"},
    "geo": [{"name": "Europe", "value": 60}]
  },
  "liquidityHistory": [{"date": "2024-01-31", "value": 8.5}],
  "documents": [{"name": "What is Niche", "url": "/niche_presentation.pdf", "date": "2024-01"}],
  "updates": {"marketContext": "Rates <higher> & volatile", "portfolioActions": "Trimmed duration", "focus": "Credit"},
  "timeline": [{"year": "2021", "event": "Launch"}]
}`
)

func fullArchive(t *testing.T) []byte {
	return buildArchive(t,
		zipFile{name: "__MACOSX/niche_dataset/._nav.csv", content: "\x00\x05\x16\x07 binary"},
		zipFile{name: "niche_dataset/"},
		zipFile{name: "niche_dataset/nav.csv", content: fixtureNAV},
		zipFile{name: "niche_dataset/metrics.csv", content: fixtureMetrics},
		zipFile{name: "niche_dataset/performance_ratio.csv", content: fixtureRatios},
		zipFile{name: "niche_dataset/asset_class_exposure.csv", content: fixtureAllocation},
		zipFile{name: "niche_dataset/balance.csv", content: fixtureBalance},
	)
}
