// Package tmux hosts long-running log streams in detached tmux sessions so
// agents can attach, inspect, and clear them without owning the process.
package tmux

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// Session errors
var (
	ErrTmuxNotInstalled   = fmt.Errorf("tmux is not installed")
	ErrNoSessionAvailable = fmt.Errorf("no tmux session available")
)

// Available checks if tmux is installed
func Available() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// Host manages one detached tmux session running a log stream
type Host struct {
	tmux        *gotmux.Tmux
	session     *gotmux.Session
	sessionName string
	mu          sync.Mutex
}

// NewHost creates a tmux host for the given simulator
func NewHost(simulatorName string) (*Host, error) {
	if !Available() {
		return nil, ErrTmuxNotInstalled
	}

	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tmux: %w", err)
	}

	return &Host{
		tmux:        t,
		sessionName: SessionName(simulatorName),
	}, nil
}

// Start finds or creates the session and runs command in its first pane.
// If the session already exists it is reused untouched so an existing
// stream keeps running.
func (h *Host) Start(command string) (created bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, err := h.tmux.ListSessions()
	if err == nil {
		for _, s := range sessions {
			if s.Name == h.sessionName {
				h.session = s
				return false, nil
			}
		}
	}

	session, err := h.tmux.NewSession(&gotmux.SessionOptions{
		Name: h.sessionName,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}
	h.session = session

	target := fmt.Sprintf("%s:0.0", h.sessionName)
	if _, err := h.tmux.Command("send-keys", "-t", target, command, "Enter"); err != nil {
		return false, fmt.Errorf("failed to start command in session: %w", err)
	}
	return true, nil
}

// Clear wipes the pane content and scrollback history
func (h *Host) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return ErrNoSessionAvailable
	}

	target := fmt.Sprintf("%s:0.0", h.sessionName)
	if _, err := h.tmux.Command("clear-history", "-t", target); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if _, err := h.tmux.Command("send-keys", "-t", target, "clear", "Enter"); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	return nil
}

// Kill destroys the session
func (h *Host) Kill() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return nil
	}
	return h.session.Kill()
}

// AttachCommand returns the shell command for attaching to this session
func (h *Host) AttachCommand() string {
	return fmt.Sprintf("tmux attach -t %s", h.sessionName)
}

// Name returns the session name
func (h *Host) Name() string {
	return h.sessionName
}

var sessionNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// SessionName creates a tmux-safe session name from a simulator name
func SessionName(simulatorName string) string {
	name := strings.ToLower(simulatorName)
	name = sessionNameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	return fmt.Sprintf("iossim-%s", name)
}
