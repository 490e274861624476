package cli

import (
	"errors"
	"fmt"

	"github.com/skyler14/ios-simulator-skill/internal/output"
	"github.com/skyler14/ios-simulator-skill/internal/simulator"
)

// CLIError is a structured error used for consistent JSON/text emission.
type CLIError struct {
	Code    string
	Message string
	Hint    string
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// outputError normalizes error emission across commands, respecting JSON vs
// text format so agents always get machine-readable failures.
func outputError(globals *Globals, code, message string) error {
	return outputErrorHint(globals, code, message, "")
}

func outputErrorHint(globals *Globals, code, message, hint string) error {
	if globals != nil && globals.JSON {
		output.NewJSONWriter(globals.Stdout).WriteError(code, message, hint)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
		if hint != "" {
			fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint)
		}
	}
	return &CLIError{Code: code, Message: message, Hint: hint}
}

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, msg string) {
	if globals.Quiet {
		return
	}
	if globals.JSON {
		output.NewJSONWriter(globals.Stdout).WriteWarning(msg)
		return
	}
	fmt.Fprintf(globals.Stderr, "Warning: %s\n", msg)
}

// deviceError maps resolver failures onto stable error codes
func deviceError(globals *Globals, err error) error {
	var multi *simulator.MultipleBootedError
	var notFound *simulator.NotFoundError
	var noBooted *simulator.NoBootedError

	switch {
	case errors.As(err, &multi):
		return outputErrorHint(globals, "MULTIPLE_BOOTED", err.Error(),
			"Pass --udid with a name or UDID from 'ios-sim list --booted'")
	case errors.As(err, &notFound):
		return outputErrorHint(globals, "DEVICE_NOT_FOUND", err.Error(),
			"Run 'ios-sim list' to see available simulators")
	case errors.As(err, &noBooted):
		return outputError(globals, "NO_BOOTED_DEVICE", err.Error())
	default:
		return outputError(globals, "DEVICE_RESOLVE_FAILED", err.Error())
	}
}
