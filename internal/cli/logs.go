package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
	"github.com/skyler14/ios-simulator-skill/internal/tmux"
)

// LogsCmd queries or follows the simulator's unified log
type LogsCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Bundle    string   `help:"Filter to an app's subsystem prefix"`
	Subsystem []string `help:"Exact subsystem filters (repeatable, OR-ed)"`
	Process   []string `help:"Process name filters (repeatable)"`
	Level     string   `default:"default" help:"Minimum level: debug, info, default, error, fault"`
	Grep      string   `help:"Only show messages matching this regex"`
	Exclude   []string `help:"Drop messages matching these regexes (repeatable)"`
	Since     string   `help:"How far back to query, e.g. 5m, 2h"`
	Limit     int      `help:"Max entries to show (0 = config default)"`

	Follow    bool `help:"Stream live logs until interrupted"`
	Tmux      bool `help:"Host the live stream in a detached tmux session"`
	TmuxKill  bool `name:"tmux-kill" help:"Kill the tmux log session for this device"`
	TmuxClear bool `name:"tmux-clear" help:"Clear the tmux log session's scrollback"`
}

// Run executes the logs command
func (c *LogsCmd) Run(globals *Globals) error {
	ctx := context.Background()
	mgr := simulator.NewManager(globals.Log)

	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	if c.Tmux || c.TmuxKill || c.TmuxClear {
		return c.runTmux(globals, device)
	}

	opts, err := c.buildOptions(globals)
	if err != nil {
		return outputError(globals, "INVALID_FLAGS", err.Error())
	}

	if c.Follow {
		return c.follow(globals, device, opts)
	}
	return c.query(ctx, globals, device, opts)
}

func (c *LogsCmd) buildOptions(globals *Globals) (simulator.LogOptions, error) {
	opts := simulator.LogOptions{
		BundleID:   c.Bundle,
		Subsystems: c.Subsystem,
		Processes:  c.Process,
		MinLevel:   domain.ParseLogLevel(c.Level),
		Limit:      c.Limit,
	}
	if opts.BundleID == "" {
		opts.BundleID = globals.Config.Defaults.BundleID
	}
	if opts.Limit <= 0 {
		opts.Limit = globals.Config.Defaults.Limit
	}

	since := c.Since
	if since == "" {
		since = globals.Config.Defaults.Since
	}
	d, err := time.ParseDuration(since)
	if err != nil {
		return opts, fmt.Errorf("invalid --since duration: %s", since)
	}
	opts.Since = d

	if c.Grep != "" {
		re, err := regexp.Compile(c.Grep)
		if err != nil {
			return opts, fmt.Errorf("invalid --grep regex: %v", err)
		}
		opts.Pattern = re
	}
	for _, pat := range c.Exclude {
		re, err := regexp.Compile(pat)
		if err != nil {
			return opts, fmt.Errorf("invalid --exclude regex: %v", err)
		}
		opts.ExcludePatterns = append(opts.ExcludePatterns, re)
	}
	return opts, nil
}

func (c *LogsCmd) query(ctx context.Context, globals *Globals, device *domain.Device, opts simulator.LogOptions) error {
	reader := simulator.NewLogReader()
	entries, err := reader.Query(ctx, device.UDID, opts)
	if err != nil {
		return outputError(globals, "LOG_QUERY_FAILED", err.Error())
	}

	if globals.JSON {
		w := output.NewJSONWriter(globals.Stdout)
		for i := range entries {
			if err := w.Write(map[string]any{"type": "log_entry", "entry": entries[i]}); err != nil {
				return err
			}
		}
		return w.WriteResult("logs", true, map[string]any{
			"udid":  device.UDID,
			"count": len(entries),
		})
	}

	for i := range entries {
		printLogEntry(globals, &entries[i])
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stderr, "%d entries\n", len(entries))
	}
	return nil
}

func (c *LogsCmd) follow(globals *Globals, device *domain.Device, opts simulator.LogOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !globals.Quiet && !globals.JSON {
		fmt.Fprintf(globals.Stderr, "Streaming logs from %s (ctrl-c to stop)\n", device.Name)
	}

	reader := simulator.NewLogReader()
	jsonWriter := output.NewJSONWriter(globals.Stdout)
	err := reader.Stream(ctx, device.UDID, opts, func(e domain.LogEntry) {
		if globals.JSON {
			_ = jsonWriter.Write(map[string]any{"type": "log_entry", "entry": e})
			return
		}
		printLogEntry(globals, &e)
	})
	if err != nil {
		return outputError(globals, "LOG_STREAM_FAILED", err.Error())
	}
	return nil
}

func (c *LogsCmd) runTmux(globals *Globals, device *domain.Device) error {
	host, err := tmux.NewHost(device.Name)
	if err != nil {
		return outputErrorHint(globals, "TMUX_MISSING", err.Error(),
			"install with: brew install tmux")
	}

	switch {
	case c.TmuxKill:
		// Start with an empty command only to bind the existing session
		if _, err := host.Start(""); err == nil {
			if err := host.Kill(); err != nil {
				return outputError(globals, "TMUX_FAILED", err.Error())
			}
		}
		return c.reportTmux(globals, host, "killed")

	case c.TmuxClear:
		if _, err := host.Start(""); err != nil {
			return outputError(globals, "TMUX_FAILED", err.Error())
		}
		if err := host.Clear(); err != nil {
			return outputError(globals, "TMUX_FAILED", err.Error())
		}
		return c.reportTmux(globals, host, "cleared")

	default:
		command := streamCommand(device.UDID, c.Bundle, c.Subsystem)
		created, err := host.Start(command)
		if err != nil {
			return outputError(globals, "TMUX_FAILED", err.Error())
		}
		state := "reused"
		if created {
			state = "created"
		}
		return c.reportTmux(globals, host, state)
	}
}

func (c *LogsCmd) reportTmux(globals *Globals, host *tmux.Host, state string) error {
	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("logs_tmux", true, map[string]string{
			"session": host.Name(),
			"state":   state,
			"attach":  host.AttachCommand(),
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Session %s %s\n", host.Name(), state)
		if state == "created" || state == "reused" {
			fmt.Fprintf(globals.Stdout, "Attach with: %s\n", host.AttachCommand())
		}
	}
	return nil
}

// streamCommand builds the raw log stream invocation to run inside tmux,
// where no parent process survives to filter entries.
func streamCommand(udid, bundleID string, subsystems []string) string {
	parts := []string{"xcrun", "simctl", "spawn", udid, "log", "stream", "--level", "debug"}
	var preds []string
	if bundleID != "" {
		preds = append(preds, fmt.Sprintf(`subsystem BEGINSWITH "%s"`, bundleID))
	}
	for _, s := range subsystems {
		preds = append(preds, fmt.Sprintf(`subsystem == "%s"`, s))
	}
	if len(preds) > 0 {
		parts = append(parts, "--predicate", fmt.Sprintf("'%s'", strings.Join(preds, " OR ")))
	}
	return strings.Join(parts, " ")
}

func printLogEntry(globals *Globals, e *domain.LogEntry) {
	ts := output.Styles.Timestamp.Render(e.Timestamp.Format("15:04:05.000"))
	lvl := output.LevelStyle(string(e.Level)).Render(fmt.Sprintf("%-7s", e.Level))
	proc := output.Styles.Process.Render(e.Process)

	line := fmt.Sprintf("%s %s %s", ts, lvl, proc)
	if globals.Verbose && e.Subsystem != "" {
		line += " " + output.Styles.Subsystem.Render(e.Subsystem)
	}
	fmt.Fprintf(globals.Stdout, "%s  %s\n", line, e.Message)
}
