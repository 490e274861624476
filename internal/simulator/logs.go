package simulator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

// LogOptions configures historical queries and live log streams
type LogOptions struct {
	BundleID        string           // Narrow to an app's subsystem prefix
	Subsystems      []string         // Explicit subsystem filters (OR)
	Processes       []string         // Process name filters
	MinLevel        domain.LogLevel  // Minimum log level (inclusive)
	Pattern         *regexp.Regexp   // Message must match
	ExcludePatterns []*regexp.Regexp // Message must not match any
	Since           time.Duration    // How far back to query (query mode)
	Limit           int              // Max entries to return (query mode, 0 = no cap)
	CommandTimeout  time.Duration    // Guardrail for the spawned log tool
}

// matches applies the in-process filters that the predicate cannot express
func (o *LogOptions) matches(e *domain.LogEntry) bool {
	if e.Level.Priority() < o.MinLevel.Priority() {
		return false
	}
	if o.Pattern != nil && !o.Pattern.MatchString(e.Message) {
		return false
	}
	for _, re := range o.ExcludePatterns {
		if re.MatchString(e.Message) {
			return false
		}
	}
	if len(o.Processes) > 0 {
		found := false
		for _, p := range o.Processes {
			if strings.EqualFold(p, e.Process) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// LogReader reads unified logs from a simulator, both historical
// (`log show`) and live (`log stream`).
type LogReader struct {
	parser *LogParser
}

// NewLogReader creates a new log reader
func NewLogReader() *LogReader {
	return &LogReader{parser: NewLogParser()}
}

// Query reads historical logs matching the criteria
func (r *LogReader) Query(ctx context.Context, udid string, opts LogOptions) ([]domain.LogEntry, error) {
	cmdCtx := ctx
	cancel := func() {}
	if opts.CommandTimeout > 0 {
		cmdCtx, cancel = context.WithTimeout(ctx, opts.CommandTimeout)
	} else if _, ok := ctx.Deadline(); !ok {
		// Guardrail to prevent hung log show calls when no deadline is set.
		cmdCtx, cancel = context.WithTimeout(ctx, 2*time.Minute)
	}
	defer cancel()

	args := []string{"simctl", "spawn", udid, "log", "show", "--style", "ndjson"}
	if opts.Since > 0 {
		args = append(args, "--last", formatLogDuration(opts.Since))
	}
	args = append(args, "--info", "--debug")
	if pred := buildPredicate(opts.BundleID, opts.Subsystems); pred != "" {
		args = append(args, "--predicate", pred)
	}

	var entries []domain.LogEntry
	err := r.scan(cmdCtx, args, func(e *domain.LogEntry) bool {
		entries = append(entries, *e)
		return opts.Limit <= 0 || len(entries) < opts.Limit
	}, opts)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Stream follows live logs until the context is done, invoking fn for
// each matching entry.
func (r *LogReader) Stream(ctx context.Context, udid string, opts LogOptions, fn func(domain.LogEntry)) error {
	args := []string{"simctl", "spawn", udid, "log", "stream", "--style", "ndjson"}
	args = append(args, "--level", "debug")
	if pred := buildPredicate(opts.BundleID, opts.Subsystems); pred != "" {
		args = append(args, "--predicate", pred)
	}

	err := r.scan(ctx, args, func(e *domain.LogEntry) bool {
		fn(*e)
		return true
	}, opts)
	if ctx.Err() != nil {
		return nil // cancelled by caller, not a failure
	}
	return err
}

// scan runs xcrun with args and feeds parsed, filtered entries to emit
// until emit returns false or output ends.
func (r *LogReader) scan(ctx context.Context, args []string, emit func(*domain.LogEntry) bool, opts LogOptions) error {
	cmd := exec.CommandContext(ctx, "xcrun", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start log tool: %w", err)
	}

	const maxLineBytes = 1024 * 1024
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	stopped := false
	for scanner.Scan() {
		entry, err := r.parser.Parse(scanner.Bytes())
		if err != nil || entry == nil {
			continue
		}
		if !opts.matches(entry) {
			continue
		}
		if !emit(entry) {
			stopped = true
			break
		}
	}

	scanErr := scanner.Err()
	if scanErr != nil && errors.Is(scanErr, bufio.ErrTooLong) {
		scanErr = fmt.Errorf("log output line too long (>%d bytes): %w", maxLineBytes, scanErr)
	}
	if stopped || scanErr != nil {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}

	waitErr := cmd.Wait()
	if scanErr != nil {
		return scanErr
	}
	if stopped || ctx.Err() != nil {
		return nil
	}
	if waitErr != nil {
		return fmt.Errorf("log tool failed: %w", waitErr)
	}
	return nil
}

// buildPredicate constructs an NSPredicate for the unified log tool.
// Bundle ID narrows by subsystem prefix; explicit subsystems are exact
// matches, OR-ed together.
func buildPredicate(bundleID string, subsystems []string) string {
	var parts []string
	if strings.TrimSpace(bundleID) != "" {
		parts = append(parts, fmt.Sprintf("subsystem BEGINSWITH %s", predicateQuoteLiteral(bundleID)))
	}
	for _, sub := range subsystems {
		if strings.TrimSpace(sub) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("subsystem == %s", predicateQuoteLiteral(sub)))
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// predicateQuoteLiteral quotes a string literal for NSPredicate syntax
func predicateQuoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatLogDuration renders a duration the way the log tool expects
// (e.g. "5m", "2h", "90s").
func formatLogDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
