package ingest

// RowLookup finds a row of a key/value style extract by its label.
//
// Label columns are tried in priority order: every row is checked against the
// first column before the next column is considered.
type RowLookup struct {
	LabelColumns []string
	ValueColumn  string
}

// LabelLookup matches metrics.csv and performance_ratio.csv. Those exports
// leave the label column header blank; older ones name it "metric".
var LabelLookup = RowLookup{
	LabelColumns: []string{"", "metric"},
	ValueColumn:  "value",
}

// Find returns the first row labelled name.
func (l RowLookup) Find(t *Table, name string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	for _, col := range l.LabelColumns {
		for _, r := range t.Records {
			if !r.Has(col) {
				continue
			}
			if v := r.Get(col); !v.IsNull() && v.String() == name {
				return r, true
			}
		}
	}
	return Record{}, false
}

// Value returns the value cell of the row labelled name.
func (l RowLookup) Value(t *Table, name string) (Value, bool) {
	r, ok := l.Find(t, name)
	if !ok {
		return Value{}, false
	}
	return r.Get(l.ValueColumn), true
}
