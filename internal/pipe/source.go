// Package pipe extracts readable content from files, directories, web
// pages, and sqlite databases into uniform chunks for downstream agents.
package pipe

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// SourceKind classifies the positional source argument
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceDir  SourceKind = "dir"
	SourceURL  SourceKind = "url"
	SourceDB   SourceKind = "db"
)

// Chunk is one extracted unit of content
type Chunk struct {
	Source  string `json:"source"`
	Kind    string `json:"kind"` // code, doc, web, table
	Content string `json:"content"`
}

// Engine runs extractions with shared options and logging
type Engine struct {
	opts Options
	log  *zap.Logger
	warn func(string)
}

// NewEngine creates an extraction engine. warn receives user-facing
// warnings; pass nil to drop them.
func NewEngine(opts Options, log *zap.Logger, warn func(string)) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if warn == nil {
		warn = func(string) {}
	}
	return &Engine{opts: opts, log: log, warn: warn}
}

var dbExtensions = []string{".db", ".sqlite", ".sqlite3"}

// ClassifySource determines what kind of source the argument names.
// URLs and sqlite connection strings are recognized by shape; everything
// else must exist on disk.
func ClassifySource(source string) (SourceKind, string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return SourceURL, source, nil
	}
	if path, ok := strings.CutPrefix(source, "sqlite://"); ok {
		return SourceDB, path, nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", "", fmt.Errorf("source not found: %s", source)
	}
	if info.IsDir() {
		return SourceDir, source, nil
	}
	for _, ext := range dbExtensions {
		if strings.HasSuffix(strings.ToLower(source), ext) {
			return SourceDB, source, nil
		}
	}
	return SourceFile, source, nil
}
