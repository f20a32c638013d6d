package ingest

import "fmt"

// ArchiveReadError means the uploaded container could not be opened or one of
// its entries could not be decompressed. The run is aborted.
type ArchiveReadError struct {
	Entry string // empty when the container itself is unreadable
	Err   error
}

func (e *ArchiveReadError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("failed to read archive: %v", e.Err)
	}
	return fmt.Sprintf("failed to read archive entry %q: %v", e.Entry, e.Err)
}

func (e *ArchiveReadError) Unwrap() error { return e.Err }

// ParseError means an extract was found but its content cannot be turned into
// records. There is no partial-table recovery: the run is aborted.
type ParseError struct {
	Extract string
	Row     int // line number in the extract, 0 when not tied to a row
	Err     error
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %v", e.Extract, e.Err)
	}
	return fmt.Sprintf("%s: row %d: %v", e.Extract, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DocumentError means the current Document has a shape the merge cannot write
// into, e.g. "nav" holding an array.
type DocumentError struct {
	Section string
	Err     error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("cannot update document section %q: %v", e.Section, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }
