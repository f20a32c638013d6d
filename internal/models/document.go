package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Top-level Document sections written by the ingestion pipeline.
// Every other section is carried through untouched.
const (
	SectionPerformance      = "performance"
	SectionNAV              = "nav"
	SectionLastUpdate       = "lastUpdate"
	SectionMetrics          = "metrics"
	SectionAllocation       = "allocation"
	SectionLiquidityHistory = "liquidityHistory"
)

// ErrNotObject is returned when a JSON value that must be an object is something else.
var ErrNotObject = errors.New("value is not a JSON object")

// Document is the persisted dashboard state. Sections are kept as raw JSON so
// that sections nobody here understands (documents, updates, timeline, ...)
// survive a load/merge/save cycle unchanged.
type Document struct {
	sections map[string]json.RawMessage
}

// NewDocument returns an empty Document.
func NewDocument() Document {
	return Document{sections: make(map[string]json.RawMessage)}
}

// ParseDocument decodes a JSON object into a Document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Document) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		return fmt.Errorf("document: %w", ErrNotObject)
	}
	sections := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &sections); err != nil {
		return err
	}
	d.sections = sections
	return nil
}

// MarshalJSON implements the json.Marshaler interface. Keys come out sorted.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.sections == nil {
		return []byte("{}"), nil
	}
	return marshal(d.sections)
}

// Encode renders the Document the way it is stored: two-space indented JSON
// with a trailing newline.
func (d Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Keys returns the section names in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.sections))
	for k := range d.sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Section returns the raw JSON of a top-level section.
func (d Document) Section(name string) (json.RawMessage, bool) {
	raw, ok := d.sections[name]
	return raw, ok
}

// DecodeSection unmarshals a top-level section into v.
// It reports false when the section is absent.
func (d Document) DecodeSection(name string, v any) (bool, error) {
	raw, ok := d.sections[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("failed to decode section %q: %w", name, err)
	}
	return true, nil
}

// Clone returns a deep copy. Mutating the clone never affects d.
func (d Document) Clone() Document {
	out := Document{sections: make(map[string]json.RawMessage, len(d.sections))}
	for k, v := range d.sections {
		out.sections[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Set replaces a whole top-level section with the JSON encoding of v.
func (d *Document) Set(name string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode section %q: %w", name, err)
	}
	if d.sections == nil {
		d.sections = make(map[string]json.RawMessage)
	}
	d.sections[name] = raw
	return nil
}

// SetField replaces one field nested under a top-level section, creating the
// intermediate objects when they are missing or null. Sibling fields are
// carried over without being decoded.
func (d *Document) SetField(v any, path ...string) error {
	if len(path) == 0 {
		return errors.New("empty field path")
	}
	if len(path) == 1 {
		return d.Set(path[0], v)
	}
	value, err := marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %v: %w", path, err)
	}
	if d.sections == nil {
		d.sections = make(map[string]json.RawMessage)
	}
	updated, err := setPath(d.sections[path[0]], path[1:], value)
	if err != nil {
		return fmt.Errorf("section %q: %w", path[0], err)
	}
	d.sections[path[0]] = updated
	return nil
}

func setPath(raw json.RawMessage, path []string, value json.RawMessage) (json.RawMessage, error) {
	obj := make(map[string]json.RawMessage)
	if len(raw) > 0 && !isNull(raw) {
		if !isObject(raw) {
			return nil, ErrNotObject
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
	}

	if len(path) == 1 {
		obj[path[0]] = value
	} else {
		child, err := setPath(obj[path[0]], path[1:], value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", path[0], err)
		}
		obj[path[0]] = child
	}
	return marshal(obj)
}

// marshal is json.Marshal without HTML escaping, so free text in the
// Document is stored as written.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
