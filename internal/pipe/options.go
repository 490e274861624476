package pipe

import (
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// Tunable defaults for code_relations excerpting
const (
	defaultHubHeadLines  = 50 // code_n1
	defaultFileHeadLines = 20 // code_n2
	defaultMaxFiles      = 20 // code_nf
	defaultHubTailLines  = 10 // code_nt
)

// Options configures an extraction run
type Options struct {
	// Directory filtering
	IncludePatterns []string
	IncludeRegex    *regexp.Regexp
	MaxFileBytes    int64

	// code_relations mode and its tunables
	CodeRelations bool
	HubHeadLines  int // head lines excerpted from hub files
	FileHeadLines int // head lines excerpted from non-hub files
	MaxFiles      int // cap on files included in the summary
	HubTailLines  int // tail lines excerpted from hub files

	// DB mode
	DBQuery string
}

// DefaultOptions returns an Options with documented defaults applied
func DefaultOptions() Options {
	return Options{
		MaxFileBytes:  2 << 20,
		HubHeadLines:  defaultHubHeadLines,
		FileHeadLines: defaultFileHeadLines,
		MaxFiles:      defaultMaxFiles,
		HubTailLines:  defaultHubTailLines,
	}
}

// ParseOptionsJSON merges an --options JSON document into opts. Unknown
// keys are ignored so newer option sets degrade gracefully.
func ParseOptionsJSON(opts *Options, raw string) error {
	if raw == "" {
		return nil
	}
	if !gjson.Valid(raw) {
		return fmt.Errorf("invalid --options JSON: %s", raw)
	}

	if v := gjson.Get(raw, "code_relations"); v.Exists() {
		opts.CodeRelations = v.Bool()
	}
	if v := gjson.Get(raw, "code_n1"); v.Exists() {
		opts.HubHeadLines = clampPositive(int(v.Int()), defaultHubHeadLines)
	}
	if v := gjson.Get(raw, "code_n2"); v.Exists() {
		opts.FileHeadLines = clampPositive(int(v.Int()), defaultFileHeadLines)
	}
	if v := gjson.Get(raw, "code_nf"); v.Exists() {
		opts.MaxFiles = clampPositive(int(v.Int()), defaultMaxFiles)
	}
	if v := gjson.Get(raw, "code_nt"); v.Exists() {
		opts.HubTailLines = clampPositive(int(v.Int()), defaultHubTailLines)
	}
	return nil
}

func clampPositive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
