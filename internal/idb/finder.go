package idb

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

// Query describes a semantic element search: text match, type match,
// or both, with an index tie-break among multiple hits.
type Query struct {
	Text  string             // Case-insensitive substring of label/value/identifier
	Type  domain.ElementType // Exact element type (Button, TextField, ...)
	Index int                // Which match to pick, in document order (0 = first)
}

// ElementNotFoundError reports a failed search with enough context for an
// agent to recover (how many matched before the index was applied).
type ElementNotFoundError struct {
	Query   Query
	Matched int
}

func (e *ElementNotFoundError) Error() string {
	var what []string
	if e.Query.Text != "" {
		what = append(what, fmt.Sprintf("text %q", e.Query.Text))
	}
	if e.Query.Type != "" {
		what = append(what, fmt.Sprintf("type %s", e.Query.Type))
	}
	desc := strings.Join(what, " and ")
	if desc == "" {
		desc = "any element"
	}
	if e.Matched > 0 {
		return fmt.Sprintf("no element with %s at index %d (%d matched)", desc, e.Query.Index, e.Matched)
	}
	return fmt.Sprintf("no element with %s found on screen", desc)
}

// FindAll returns every element matching the query, in document order
func FindAll(elements []domain.Element, q Query) []domain.Element {
	text := strings.ToLower(q.Text)
	return lo.Filter(elements, func(e domain.Element, _ int) bool {
		if q.Type != "" && !strings.EqualFold(string(e.Type), string(q.Type)) {
			return false
		}
		if text != "" {
			if !strings.Contains(strings.ToLower(e.Label), text) &&
				!strings.Contains(strings.ToLower(e.Value), text) &&
				!strings.Contains(strings.ToLower(e.Identifier), text) {
				return false
			}
		}
		return true
	})
}

// Find returns the Index-th matching element
func Find(elements []domain.Element, q Query) (*domain.Element, error) {
	matches := FindAll(elements, q)
	if q.Index < 0 || q.Index >= len(matches) {
		return nil, &ElementNotFoundError{Query: q, Matched: len(matches)}
	}
	return &matches[q.Index], nil
}
