package output

import (
	"encoding/json"
	"io"
	"time"
)

// SchemaVersion is bumped when the shape of JSON output changes
// incompatibly. Agents should check it before parsing.
const SchemaVersion = 1

// JSONWriter writes typed JSON objects, one per line
type JSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSON writer
func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep payloads unescaped and avoid extra allocations
	return &JSONWriter{
		w:       w,
		encoder: enc,
	}
}

// Write encodes any value as a single JSON line
func (w *JSONWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// ErrorOutput represents an error in a machine-readable way
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Timestamp     string `json:"timestamp"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Simulator     string `json:"simulator,omitempty"`
	UDID          string `json:"udid,omitempty"`
}

// ResultOutput is the generic success envelope for single-shot operations
type ResultOutput struct {
	Type          string      `json:"type"` // Always "result"
	SchemaVersion int         `json:"schemaVersion"`
	Operation     string      `json:"operation"`
	OK            bool        `json:"ok"`
	Detail        interface{} `json:"detail,omitempty"`
}

// NewErrorOutput creates an ErrorOutput with the current timestamp
func NewErrorOutput(code, message, hint string) ErrorOutput {
	return ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Code:          code,
		Message:       message,
		Hint:          hint,
	}
}

// WriteError writes an error object
func (w *JSONWriter) WriteError(code, message, hint string) error {
	return w.encoder.Encode(NewErrorOutput(code, message, hint))
}

// WriteWarning writes a warning object
func (w *JSONWriter) WriteWarning(message string) error {
	return w.encoder.Encode(WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// WriteInfo writes an informational object
func (w *JSONWriter) WriteInfo(message, simulator, udid string) error {
	return w.encoder.Encode(InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       message,
		Simulator:     simulator,
		UDID:          udid,
	})
}

// WriteResult writes a generic success envelope
func (w *JSONWriter) WriteResult(operation string, ok bool, detail interface{}) error {
	return w.encoder.Encode(ResultOutput{
		Type:          "result",
		SchemaVersion: SchemaVersion,
		Operation:     operation,
		OK:            ok,
		Detail:        detail,
	})
}
