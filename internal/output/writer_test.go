package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestJSONWriter_WriteError(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	require.NoError(t, w.WriteError("DEVICE_NOT_FOUND", "device not found: x", "run 'ios-sim list'"))

	m := decodeLine(t, buf)
	assert.Equal(t, "error", m["type"])
	assert.Equal(t, float64(SchemaVersion), m["schemaVersion"])
	assert.Equal(t, "DEVICE_NOT_FOUND", m["code"])
	assert.Equal(t, "device not found: x", m["message"])
	assert.Equal(t, "run 'ios-sim list'", m["hint"])
	assert.NotEmpty(t, m["timestamp"])
}

func TestJSONWriter_WriteError_OmitsEmptyHint(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONWriter(buf).WriteError("X", "y", ""))

	m := decodeLine(t, buf)
	_, hasHint := m["hint"]
	assert.False(t, hasHint)
}

func TestJSONWriter_WriteResult(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	require.NoError(t, w.WriteResult("boot", true, map[string]string{"udid": "AAAA"}))

	m := decodeLine(t, buf)
	assert.Equal(t, "result", m["type"])
	assert.Equal(t, "boot", m["operation"])
	assert.Equal(t, true, m["ok"])
	detail := m["detail"].(map[string]interface{})
	assert.Equal(t, "AAAA", detail["udid"])
}

func TestJSONWriter_NoHTMLEscaping(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONWriter(buf).Write(map[string]string{"msg": "a < b && c > d"}))
	assert.Contains(t, buf.String(), "a < b && c > d")
}

func TestTable(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Table(buf, []string{"NAME", "STATE"}, [][]string{
		{"iPhone 16", "Booted"},
		{"iPad Air", "Shutdown"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "iPhone 16")
	assert.Contains(t, out, "Shutdown")
}
