// Package xcodebuild shells out to Apple's xcodebuild and condenses its
// notoriously noisy output into a small result summary.
package xcodebuild

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Request describes one build or test invocation
type Request struct {
	Project       string // .xcodeproj path
	Workspace     string // .xcworkspace path (wins over Project)
	Scheme        string
	Configuration string
	DeviceUDID    string // simulator destination
	Test          bool   // run tests instead of build
}

// Result is the condensed outcome of a run
type Result struct {
	Succeeded    bool     `json:"succeeded"`
	Action       string   `json:"action"` // build or test
	TestsRun     int      `json:"tests_run,omitempty"`
	TestFailures int      `json:"test_failures,omitempty"`
	Errors       []string `json:"errors,omitempty"`
	Warnings     int      `json:"warnings"`
}

// Runner invokes xcodebuild
type Runner struct {
	path string
	log  *zap.Logger
}

// NewRunner creates an xcodebuild runner
func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{path: "xcodebuild", log: log}
}

// Available checks if xcodebuild is installed
func (r *Runner) Available() bool {
	_, err := exec.LookPath(r.path)
	return err == nil
}

var (
	executedRe = regexp.MustCompile(`Executed (\d+) tests?, with (\d+) failures?`)
	errorRe    = regexp.MustCompile(`(?:^|\s)error: (.+)$`)
	warningRe  = regexp.MustCompile(`(?:^|\s)warning: `)
)

// Run executes the request, streaming raw output to progress (pass nil to
// discard) while accumulating the summary. A failing build returns the
// Result alongside a nil error; err is reserved for invocation problems.
func (r *Runner) Run(ctx context.Context, req Request, progress io.Writer) (*Result, error) {
	args, err := buildArgs(req)
	if err != nil {
		return nil, err
	}
	r.log.Debug("running xcodebuild", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, r.path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start xcodebuild: %w", err)
	}

	result := &Result{Action: "build"}
	if req.Test {
		result.Action = "test"
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if progress != nil {
			fmt.Fprintln(progress, line)
		}
		parseLine(result, line)
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	result.Succeeded = waitErr == nil
	return result, nil
}

func buildArgs(req Request) ([]string, error) {
	if req.Scheme == "" {
		return nil, fmt.Errorf("a scheme is required")
	}

	var args []string
	switch {
	case req.Workspace != "":
		args = append(args, "-workspace", req.Workspace)
	case req.Project != "":
		args = append(args, "-project", req.Project)
	default:
		return nil, fmt.Errorf("either a project or a workspace is required")
	}

	args = append(args, "-scheme", req.Scheme)
	if req.Configuration != "" {
		args = append(args, "-configuration", req.Configuration)
	}
	if req.DeviceUDID != "" {
		args = append(args, "-destination", "platform=iOS Simulator,id="+req.DeviceUDID)
	}

	if req.Test {
		args = append(args, "test")
	} else {
		args = append(args, "build")
	}
	return args, nil
}

// parseLine picks test counts, errors, and warnings out of one output line
func parseLine(result *Result, line string) {
	if m := executedRe.FindStringSubmatch(line); m != nil {
		// The final "Executed" line aggregates all suites; later lines
		// supersede earlier per-suite ones.
		if n, err := strconv.Atoi(m[1]); err == nil {
			result.TestsRun = n
		}
		if n, err := strconv.Atoi(m[2]); err == nil {
			result.TestFailures = n
		}
		return
	}
	if m := errorRe.FindStringSubmatch(line); m != nil {
		msg := strings.TrimSpace(m[1])
		if len(result.Errors) < 20 {
			result.Errors = append(result.Errors, msg)
		}
		return
	}
	if warningRe.MatchString(line) {
		result.Warnings++
	}
}
