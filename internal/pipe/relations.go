package pipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Import statement shapes across the languages worth scanning. Each
// pattern's first capture group is the referenced module path or file.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*import\s+"([^"]+)"`),                   // go single import
	regexp.MustCompile(`(?m)^\s*"([^"]+)"\s*$`),                        // go import block line
	regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`),           // python from X import
	regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)\s*$`),                // python import X
	regexp.MustCompile(`(?m)\brequire\(['"]([^'"]+)['"]\)`),            // node require
	regexp.MustCompile(`(?m)^\s*import\s+.*?\s+from\s+['"]([^'"]+)['"]`), // es modules
	regexp.MustCompile(`(?m)^\s*#include\s+"([^"]+)"`),                 // c/c++ local include
	regexp.MustCompile(`(?m)^\s*use\s+((?:\w+::)+\w+)`),                // rust use
}

// fileNode is one source file in the import graph
type fileNode struct {
	path    string // root-relative
	content string
	fanIn   int
	fanOut  int
}

// extractRelations builds an import graph over the tree and summarizes
// it: heavily imported "hub" files get head and tail excerpts, the rest
// get short heads, capped at MaxFiles total.
func (e *Engine) extractRelations(ctx context.Context, root string) ([]Chunk, error) {
	if len(e.opts.IncludePatterns) > 0 || e.opts.IncludeRegex != nil {
		// A narrowed walk hides edges, so rankings reflect only the
		// matched subset.
		e.warn("include patterns combined with code_relations: the dependency graph only covers matched files, which weakens hub ranking")
	}

	paths, err := e.collectPaths(root)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*fileNode, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data, err := os.ReadFile(path)
		if err != nil || isBinary(data) {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if chunkKind(path) != "code" {
			continue
		}
		nodes[rel] = &fileNode{path: rel, content: string(data)}
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no code files found under %s", root)
	}

	e.linkImports(nodes)
	ranked := rankNodes(nodes)

	limit := min(len(ranked), e.opts.MaxFiles)
	hubCount := hubCutoff(ranked, limit)

	chunks := make([]Chunk, 0, limit+1)
	chunks = append(chunks, summaryChunk(root, ranked, limit, hubCount))

	for i, node := range ranked[:limit] {
		var content string
		if i < hubCount {
			content = excerptHeadTail(node.content, e.opts.HubHeadLines, e.opts.HubTailLines)
		} else {
			content = excerptHead(node.content, e.opts.FileHeadLines)
		}
		chunks = append(chunks, Chunk{
			Source:  filepath.Join(root, node.path),
			Kind:    "code",
			Content: content,
		})
	}

	e.log.Debug("relations summary built",
		zap.Int("files", len(nodes)),
		zap.Int("included", limit),
		zap.Int("hubs", hubCount))
	return chunks, nil
}

// linkImports scans every node's content for import statements and
// resolves them against the node set, counting fan-in and fan-out.
// Resolution is fuzzy: a reference matches a file whose path (minus
// extension) ends with the referenced path.
func (e *Engine) linkImports(nodes map[string]*fileNode) {
	// Index by import-style keys: full path without extension, and the
	// bare file name without extension
	index := make(map[string][]*fileNode)
	for _, n := range nodes {
		trimmed := strings.TrimSuffix(n.path, filepath.Ext(n.path))
		index[trimmed] = append(index[trimmed], n)
		index[filepath.Base(trimmed)] = append(index[filepath.Base(trimmed)], n)
	}

	for _, n := range nodes {
		seen := map[*fileNode]bool{}
		for _, re := range importPatterns {
			for _, match := range re.FindAllStringSubmatch(n.content, -1) {
				ref := normalizeRef(match[1])
				for _, target := range resolveRef(index, ref) {
					if target == n || seen[target] {
						continue
					}
					seen[target] = true
					target.fanIn++
					n.fanOut++
				}
			}
		}
	}
}

// normalizeRef converts dotted or :: module paths to slash form and
// strips relative prefixes.
func normalizeRef(ref string) string {
	ref = strings.ReplaceAll(ref, "::", "/")
	if !strings.Contains(ref, "/") {
		ref = strings.ReplaceAll(ref, ".", "/")
	}
	ref = strings.TrimPrefix(ref, "./")
	for strings.HasPrefix(ref, "../") {
		ref = strings.TrimPrefix(ref, "../")
	}
	ref = strings.TrimSuffix(ref, filepath.Ext(ref))
	return ref
}

func resolveRef(index map[string][]*fileNode, ref string) []*fileNode {
	if targets, ok := index[ref]; ok {
		return targets
	}
	// Fall back to the last path segment (package-style references)
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		if targets, ok := index[ref[idx+1:]]; ok {
			return targets
		}
	}
	return nil
}

// rankNodes orders files by fan-in descending, then fan-out descending,
// then path ascending so output is deterministic.
func rankNodes(nodes map[string]*fileNode) []*fileNode {
	ranked := lo.Values(nodes)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].fanIn != ranked[j].fanIn {
			return ranked[i].fanIn > ranked[j].fanIn
		}
		if ranked[i].fanOut != ranked[j].fanOut {
			return ranked[i].fanOut > ranked[j].fanOut
		}
		return ranked[i].path < ranked[j].path
	})
	return ranked
}

// hubCutoff decides how many of the top-ranked files count as hubs:
// those with any fan-in, capped at a quarter of the included set (at
// least one when anything is imported at all).
func hubCutoff(ranked []*fileNode, limit int) int {
	cutoff := 0
	maxHubs := max(limit/4, 1)
	for i := 0; i < limit && i < len(ranked); i++ {
		if ranked[i].fanIn == 0 || cutoff >= maxHubs {
			break
		}
		cutoff++
	}
	return cutoff
}

func summaryChunk(root string, ranked []*fileNode, limit, hubCount int) Chunk {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dependency map: %s\n\n", root)
	fmt.Fprintf(&b, "%d code files scanned, showing %d (%d hubs).\n\n", len(ranked), limit, hubCount)
	b.WriteString("| file | imported by | imports |\n|---|---|---|\n")
	for _, n := range ranked[:limit] {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", n.path, n.fanIn, n.fanOut)
	}
	return Chunk{Source: root, Kind: "doc", Content: b.String()}
}

func excerptHead(content string, n int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= n {
		return content
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n... (%d more lines)", len(lines)-n)
}

func excerptHeadTail(content string, head, tail int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= head+tail {
		return content
	}
	omitted := len(lines) - head - tail
	return strings.Join(lines[:head], "\n") +
		fmt.Sprintf("\n... (%d lines omitted)\n", omitted) +
		strings.Join(lines[len(lines)-tail:], "\n")
}
