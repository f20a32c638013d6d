package ingest

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/util"
)

// balance.csv columns
const (
	colBalanceTimestamp = "timestamp"
	colEUR              = "EUR"
	colUSD              = "USD"
)

// LiquidityFragment is the full liquidity series; it replaces the stored one.
type LiquidityFragment struct {
	History []models.Point
}

// ExtractLiquidity derives the cash share of NAV for every balance date that
// has a NAV on the same calendar date. Dates without a NAV, or with a NAV at or
// below zero, are dropped rather than zero-filled.
//
// Cash is EUR + USD at 1:1. The export carries no FX history, so USD balances
// are not converted.
func ExtractLiquidity(balance *Table, navs []NAVRecord, w *Warnings) (*LiquidityFragment, error) {
	if balance.Len() == 0 || len(navs) == 0 {
		return nil, nil
	}

	// navs are sorted, so the latest record of a day wins
	navByDate := make(map[string]float64, len(navs))
	for _, r := range navs {
		navByDate[r.Date()] = r.NAV
	}

	history := make([]models.Point, 0, len(balance.Records))
	for _, r := range balance.Records {
		raw := r.Get(colBalanceTimestamp)
		if raw.IsNull() {
			return nil, &ParseError{Extract: balance.Name, Row: r.Line, Err: errors.New("missing timestamp")}
		}
		ts, err := util.ParseTimestamp(raw.String())
		if err != nil {
			return nil, &ParseError{Extract: balance.Name, Row: r.Line, Err: err}
		}
		date := util.DateOnly(ts)

		nav, ok := navByDate[date]
		if !ok {
			w.add(models.WarnUnmatchedBalance, "%s: row %d: no NAV on %s, dropped", balance.Name, r.Line, date)
			continue
		}
		if nav <= 0 {
			w.add(models.WarnNonPositiveNAV, "%s: row %d: NAV on %s is %v, dropped", balance.Name, r.Line, date, nav)
			continue
		}

		cash := currencyBalance(r, colEUR, balance.Name, w).Add(currencyBalance(r, colUSD, balance.Name, w))
		history = append(history, models.Point{
			Date:  date,
			Value: ratioPercent(cash, decimal.NewFromFloat(nav), 2),
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})

	return &LiquidityFragment{History: history}, nil
}

// currencyBalance reads one currency column; absent or empty counts as zero.
func currencyBalance(r Record, col, extract string, w *Warnings) decimal.Decimal {
	v := r.Get(col)
	if v.IsNull() {
		return decimal.Zero
	}
	f, ok := v.Float()
	if !ok {
		w.add(models.WarnNonNumericValue, "%s: row %d: %s balance %q is not a number, counted as 0", extract, r.Line, col, v.String())
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
