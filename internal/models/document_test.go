package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "nav": {"current": 100, "ytd": 2.5},
  "updates": {"marketContext": "Rates <higher> & volatile"},
  "timeline": [{"year": "2021", "event": "Launch"}],
  "allocation": null
}`

func TestParseDocument_RejectsNonObject(t *testing.T) {
	for _, in := range []string{`[]`, `"x"`, `null`, `42`} {
		_, err := ParseDocument([]byte(in))
		assert.True(t, errors.Is(err, ErrNotObject), in)
	}

	_, err := ParseDocument([]byte(`{"nav": `))
	assert.Error(t, err)
}

func TestDocument_KeysAndSections(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, []string{"allocation", "nav", "timeline", "updates"}, doc.Keys())

	raw, ok := doc.Section("timeline")
	require.True(t, ok)
	assert.JSONEq(t, `[{"year": "2021", "event": "Launch"}]`, string(raw))

	_, ok = doc.Section("documents")
	assert.False(t, ok)

	var nav NAVSummary
	found, err := doc.DecodeSection(SectionNAV, &nav)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, NAVSummary{Current: 100, YTD: 2.5}, nav)

	found, err = doc.DecodeSection(SectionMetrics, &nav)
	assert.NoError(t, err)
	assert.False(t, found)

	var wrong []Point
	_, err = doc.DecodeSection(SectionNAV, &wrong)
	assert.Error(t, err)
}

func TestDocument_SetFieldKeepsSiblings(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	require.NoError(t, doc.SetField(1.5, SectionNAV, "mtd"))
	require.NoError(t, doc.SetField(80.0, SectionAllocation, "exposure", "net"))
	require.NoError(t, doc.SetField("2024-03-02", SectionLastUpdate))

	raw, _ := doc.Section(SectionNAV)
	assert.JSONEq(t, `{"current": 100, "ytd": 2.5, "mtd": 1.5}`, string(raw))

	raw, _ = doc.Section(SectionAllocation)
	assert.JSONEq(t, `{"exposure": {"net": 80}}`, string(raw))

	raw, _ = doc.Section(SectionLastUpdate)
	assert.Equal(t, `"2024-03-02"`, string(raw))
}

func TestDocument_SetFieldOnNonObject(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"nav": [1], "allocation": {"exposure": "high"}}`))
	require.NoError(t, err)

	err = doc.SetField(1.0, SectionNAV, "ytd")
	assert.True(t, errors.Is(err, ErrNotObject))

	err = doc.SetField(1.0, SectionAllocation, "exposure", "net")
	assert.True(t, errors.Is(err, ErrNotObject))

	assert.Error(t, doc.SetField(1.0))
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)

	clone := doc.Clone()
	require.NoError(t, clone.SetField(0.0, SectionNAV, "current"))
	require.NoError(t, clone.Set("extra", true))

	var nav NAVSummary
	_, err = doc.DecodeSection(SectionNAV, &nav)
	require.NoError(t, err)
	assert.Equal(t, 100.0, nav.Current)
	_, ok := doc.Section("extra")
	assert.False(t, ok)
}

func TestDocument_EncodeIsStableAndUnescaped(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	require.NoError(t, err)
	require.NoError(t, doc.SetField("a < b", "updates", "focus"))

	first, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(first), "Rates <higher> & volatile")
	assert.Contains(t, string(first), `"focus": "a < b"`)
	assert.Equal(t, byte('\n'), first[len(first)-1])

	reparsed, err := ParseDocument(first)
	require.NoError(t, err)
	second, err := reparsed.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDocument_ZeroValue(t *testing.T) {
	var doc Document

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
	assert.Empty(t, doc.Keys())

	require.NoError(t, doc.SetField(1.0, SectionNAV, "current"))
	raw, _ := doc.Section(SectionNAV)
	assert.JSONEq(t, `{"current": 1}`, string(raw))
}
