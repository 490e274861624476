package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// RecordCmd captures a screen recording. With --duration it records for a
// fixed window; otherwise it records until interrupted.
type RecordCmd struct {
	Udid string `help:"Simulator UDID or name"`

	Out      string        `help:"Output mp4 path (default: recording-<id>.mp4)"`
	Duration time.Duration `help:"Stop automatically after this long, e.g. 10s"`
}

// Run executes the record command
func (c *RecordCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := simulator.NewManager(globals.Log)
	device, err := resolveOne(ctx, mgr, globals, deviceFlags{Udid: c.Udid})
	if err != nil {
		return deviceError(globals, err)
	}

	runID := uuid.NewString()[:8]
	path := c.Out
	if path == "" {
		path = fmt.Sprintf("recording-%s.mp4", runID)
	}

	rec, err := mgr.StartRecording(device.UDID, path)
	if err != nil {
		return outputError(globals, "RECORD_FAILED", err.Error())
	}

	if !globals.Quiet && !globals.JSON {
		if c.Duration > 0 {
			fmt.Fprintf(globals.Stderr, "Recording %s for %s...\n", device.Name, c.Duration)
		} else {
			fmt.Fprintf(globals.Stderr, "Recording %s (ctrl-c to stop)...\n", device.Name)
		}
	}

	started := time.Now()
	if c.Duration > 0 {
		select {
		case <-time.After(c.Duration):
		case <-ctx.Done():
		}
	} else {
		<-ctx.Done()
	}

	if err := rec.Stop(); err != nil {
		return outputError(globals, "RECORD_FAILED", fmt.Sprintf("failed to stop recorder: %v", err))
	}
	elapsed := time.Since(started).Round(time.Millisecond)

	if globals.JSON {
		return output.NewJSONWriter(globals.Stdout).WriteResult("record", true, map[string]any{
			"udid":     device.UDID,
			"run_id":   runID,
			"path":     path,
			"duration": elapsed.Seconds(),
		})
	}
	if !globals.Quiet {
		fmt.Fprintf(globals.Stdout, "Saved %s recording to %s\n", elapsed, path)
	}
	return nil
}
