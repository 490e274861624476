package pipe

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Directories never worth extracting from
var prunedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	".git":         true,
}

// Extensions treated as documentation rather than code
var docExtensions = map[string]bool{
	".md":   true,
	".rst":  true,
	".txt":  true,
	".adoc": true,
}

// ExtractFile reads a single file into one chunk
func (e *Engine) ExtractFile(path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if isBinary(data) {
		return nil, fmt.Errorf("%s looks like a binary file", path)
	}
	return []Chunk{{
		Source:  path,
		Kind:    chunkKind(path),
		Content: string(data),
	}}, nil
}

// ExtractDir walks a directory tree and extracts every matching text
// file, reading in parallel. Results are ordered by path.
func (e *Engine) ExtractDir(ctx context.Context, root string) ([]Chunk, error) {
	if e.opts.CodeRelations {
		return e.extractRelations(ctx, root)
	}

	paths, err := e.collectPaths(root)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	chunks := make([]Chunk, 0, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			data, err := os.ReadFile(path)
			if err != nil {
				e.log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
				return nil
			}
			if isBinary(data) {
				e.log.Debug("skipping binary file", zap.String("path", path))
				return nil
			}
			mu.Lock()
			chunks = append(chunks, Chunk{
				Source:  path,
				Kind:    chunkKind(path),
				Content: string(data),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Source < chunks[j].Source })
	return chunks, nil
}

// collectPaths walks root applying pruning, size, and include filters
func (e *Engine) collectPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.log.Warn("walk error", zap.String("path", path), zap.Error(err))
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (prunedDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if info, err := d.Info(); err == nil && e.opts.MaxFileBytes > 0 && info.Size() > e.opts.MaxFileBytes {
			e.log.Debug("skipping oversized file", zap.String("path", path), zap.Int64("size", info.Size()))
			return nil
		}
		if !e.pathIncluded(root, path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// pathIncluded applies --include_patterns globs (matched against the base
// name and the root-relative path) and --include_regex. With no filters
// everything passes.
func (e *Engine) pathIncluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	if len(e.opts.IncludePatterns) > 0 {
		matched := false
		for _, pat := range e.opts.IncludePatterns {
			if ok, _ := filepath.Match(pat, filepath.Base(path)); ok {
				matched = true
				break
			}
			if ok, _ := filepath.Match(pat, rel); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if e.opts.IncludeRegex != nil && !e.opts.IncludeRegex.MatchString(rel) {
		return false
	}
	return true
}

func chunkKind(path string) string {
	if docExtensions[strings.ToLower(filepath.Ext(path))] {
		return "doc"
	}
	return "code"
}

// isBinary reports whether data looks like non-text content. A null byte
// in the first 512 bytes is the usual tell.
func isBinary(data []byte) bool {
	n := min(len(data), 512)
	return bytes.IndexByte(data[:n], 0) >= 0
}
