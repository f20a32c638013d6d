package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = extracts, W2xxx = rows and values, W3xxx = stored state.
type WarningCode string

const (
	WarnMissingExtract     WarningCode = "W1001" // expected CSV absent from the archive
	WarnEmptyExtract       WarningCode = "W1002" // CSV present but without data rows
	WarnMissingMetricRow   WarningCode = "W2001" // named row absent, field left untouched
	WarnNonNumericValue    WarningCode = "W2002" // value cell not a number, field or row skipped
	WarnUnmatchedBalance   WarningCode = "W2003" // balance row without a same-date NAV (dropped)
	WarnNonPositiveNAV     WarningCode = "W2004" // balance row matched a NAV <= 0 (dropped)
	WarnNonPositiveHolding WarningCode = "W2005" // allocation row with exposure <= 0 (dropped)
	WarnNoStoredDocument   WarningCode = "W3001" // no Document stored yet, merged into an empty one
	WarnArchiveNotStored   WarningCode = "W3002" // Document saved, uploaded archive not kept
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
