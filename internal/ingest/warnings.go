package ingest

import (
	"fmt"

	"github.com/epeers/fundboard/internal/models"
)

// Warnings accumulates the non-fatal findings of one run: missing extracts,
// missing rows, skipped values.
type Warnings []models.Warning

func (w *Warnings) add(code models.WarningCode, format string, args ...any) {
	*w = append(*w, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}
