package simulator

import (
	"fmt"
	"strings"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

// MultipleBootedError is returned when auto-detection finds more than one
// booted simulator and no explicit identifier was given.
type MultipleBootedError struct {
	Devices []domain.Device
}

func (e *MultipleBootedError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple booted simulators found:\n")
	for _, d := range e.Devices {
		fmt.Fprintf(&sb, "  %s (%s)\n", d.Name, d.UDID)
	}
	sb.WriteString("Use --udid to specify one")
	return sb.String()
}

// NotFoundError is returned when no simulator matches the given identifier.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device not found: %s", e.Identifier)
}

// NoBootedError is returned when auto-detection finds no booted simulator.
type NoBootedError struct{}

func (e *NoBootedError) Error() string {
	return "no booted simulator found; boot one with: ios-sim boot --udid <name-or-udid>"
}
