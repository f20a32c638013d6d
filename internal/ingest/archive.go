package ingest

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Extract file names looked up in an uploaded archive.
const (
	FileNAV        = "nav.csv"
	FileMetrics    = "metrics.csv"
	FileRatios     = "performance_ratio.csv"
	FileAllocation = "asset_class_exposure.csv"
	FileBalance    = "balance.csv"
)

// FileNames lists every extract the pipeline knows, in processing order.
var FileNames = []string{FileNAV, FileMetrics, FileRatios, FileAllocation, FileBalance}

// macMetadataMarker marks resource-fork entries added by the macOS archiver.
const macMetadataMarker = "__MACOSX"

// Entry is one file of an archive.
type Entry struct {
	Name    string
	Content []byte
}

// Archive holds the decompressed files of a zip container in container order.
type Archive struct {
	entries []Entry
}

// ReadArchive decompresses every file entry of a zip container. Archives are
// small, so everything is read up front.
func ReadArchive(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveReadError{Err: err}
	}

	archive := &Archive{entries: make([]Entry, 0, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readEntry(f)
		if err != nil {
			return nil, &ArchiveReadError{Entry: f.Name, Err: err}
		}
		archive.entries = append(archive.entries, Entry{Name: f.Name, Content: content})
	}
	return archive, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Entries returns the files in container order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Files returns the archive as a path -> content mapping.
func (a *Archive) Files() map[string][]byte {
	files := make(map[string][]byte, len(a.entries))
	for _, e := range a.entries {
		files[e.Name] = e.Content
	}
	return files
}

// Find returns the first entry whose path ends with filename, whatever
// directory it sits in. Matching is case-sensitive and macOS metadata entries
// are never selected.
func (a *Archive) Find(filename string) (Entry, bool) {
	for _, e := range a.entries {
		if strings.Contains(e.Name, macMetadataMarker) {
			continue
		}
		if strings.HasSuffix(e.Name, filename) {
			return e, true
		}
	}
	return Entry{}, false
}
