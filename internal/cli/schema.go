package cli

import (
	"encoding/json"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/output"
)

// SchemaCmd outputs JSON Schema for the tool's JSON output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (error,warning,info,result,device,app,element,log_entry,health_check). Default: all"`
}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]any{
		"error":        errorSchema(),
		"warning":      messageSchema("warning"),
		"info":         messageSchema("info"),
		"result":       resultSchema(),
		"device":       deviceSchema(),
		"app":          appSchema(),
		"element":      elementSchema(),
		"log_entry":    logEntrySchema(),
		"health_check": healthCheckSchema(),
	}

	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = []string{"error", "warning", "info", "result", "device", "app", "element", "log_entry", "health_check"}
	}

	schemaOutput := map[string]any{
		"$schema":       "http://json-schema.org/draft-07/schema#",
		"title":         "ios-sim Output Schemas",
		"description":   "JSON Schema definitions for ios-sim --json output lines",
		"schemaVersion": output.SchemaVersion,
		"definitions":   map[string]any{},
	}

	defs := schemaOutput["definitions"].(map[string]any)
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schemaOutput)
}

func errorSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"type", "code", "message"},
		"properties": map[string]any{
			"type":          map[string]any{"const": "error"},
			"schemaVersion": map[string]any{"type": "integer"},
			"code":          map[string]any{"type": "string", "description": "Stable machine-readable error code"},
			"message":       map[string]any{"type": "string"},
			"hint":          map[string]any{"type": "string", "description": "Suggested remediation"},
		},
	}
}

func messageSchema(kind string) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"type", "message"},
		"properties": map[string]any{
			"type":          map[string]any{"const": kind},
			"schemaVersion": map[string]any{"type": "integer"},
			"message":       map[string]any{"type": "string"},
		},
	}
}

func resultSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"required":    []string{"type", "ok"},
		"description": "Terminal line for every command, carrying command-specific data",
		"properties": map[string]any{
			"type":          map[string]any{"type": "string", "description": "Command name, e.g. boot, navigate"},
			"schemaVersion": map[string]any{"type": "integer"},
			"ok":            map[string]any{"type": "boolean"},
			"data":          map[string]any{"type": "object"},
		},
	}
}

func deviceSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"udid", "name", "state"},
		"properties": map[string]any{
			"udid":        map[string]any{"type": "string"},
			"name":        map[string]any{"type": "string"},
			"state":       map[string]any{"enum": []string{"Shutdown", "Booted", "Booting", "Creating", "Shutting Down"}},
			"isAvailable": map[string]any{"type": "boolean"},
			"runtime":     map[string]any{"type": "string"},
		},
	}
}

func appSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"bundle_id", "name"},
		"properties": map[string]any{
			"bundle_id":    map[string]any{"type": "string"},
			"name":         map[string]any{"type": "string"},
			"version":      map[string]any{"type": "string"},
			"build_number": map[string]any{"type": "string"},
			"type":         map[string]any{"enum": []string{"user", "system"}},
		},
	}
}

func elementSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":       map[string]any{"type": "string", "description": "Accessibility element type, e.g. Button"},
			"label":      map[string]any{"type": "string"},
			"value":      map[string]any{"type": "string"},
			"identifier": map[string]any{"type": "string"},
			"enabled":    map[string]any{"type": "boolean"},
			"frame": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"x":      map[string]any{"type": "number"},
					"y":      map[string]any{"type": "number"},
					"width":  map[string]any{"type": "number"},
					"height": map[string]any{"type": "number"},
				},
			},
		},
	}
}

func logEntrySchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"timestamp", "level", "message"},
		"properties": map[string]any{
			"timestamp": map[string]any{"type": "string", "format": "date-time"},
			"level":     map[string]any{"enum": []string{"Debug", "Info", "Default", "Error", "Fault"}},
			"process":   map[string]any{"type": "string"},
			"pid":       map[string]any{"type": "integer"},
			"subsystem": map[string]any{"type": "string"},
			"category":  map[string]any{"type": "string"},
			"message":   map[string]any{"type": "string"},
		},
	}
}

func healthCheckSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "ok", "required"},
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"ok":       map[string]any{"type": "boolean"},
			"required": map[string]any{"type": "boolean", "description": "Whether failure blocks the toolkit"},
			"detail":   map[string]any{"type": "string"},
		},
	}
}
