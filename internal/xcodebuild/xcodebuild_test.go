package xcodebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	t.Run("project build", func(t *testing.T) {
		args, err := buildArgs(Request{Project: "App.xcodeproj", Scheme: "App"})
		require.NoError(t, err)
		assert.Equal(t, []string{"-project", "App.xcodeproj", "-scheme", "App", "build"}, args)
	})

	t.Run("workspace wins over project", func(t *testing.T) {
		args, err := buildArgs(Request{Project: "App.xcodeproj", Workspace: "App.xcworkspace", Scheme: "App"})
		require.NoError(t, err)
		assert.Equal(t, "-workspace", args[0])
		assert.Equal(t, "App.xcworkspace", args[1])
	})

	t.Run("test with destination", func(t *testing.T) {
		args, err := buildArgs(Request{
			Project:       "App.xcodeproj",
			Scheme:        "App",
			Configuration: "Debug",
			DeviceUDID:    "AAAA-1111",
			Test:          true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"-project", "App.xcodeproj",
			"-scheme", "App",
			"-configuration", "Debug",
			"-destination", "platform=iOS Simulator,id=AAAA-1111",
			"test",
		}, args)
	})

	t.Run("missing scheme", func(t *testing.T) {
		_, err := buildArgs(Request{Project: "App.xcodeproj"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheme")
	})

	t.Run("missing project and workspace", func(t *testing.T) {
		_, err := buildArgs(Request{Scheme: "App"})
		require.Error(t, err)
	})
}

func TestParseLine(t *testing.T) {
	result := &Result{Action: "test"}

	parseLine(result, "Test Suite 'LoginTests' started at 2026-08-30 10:00:00.000")
	parseLine(result, "Executed 4 tests, with 1 failure (0 unexpected) in 0.251 seconds")
	parseLine(result, "Executed 12 tests, with 2 failures (0 unexpected) in 1.504 seconds")

	assert.Equal(t, 12, result.TestsRun, "the final aggregate line wins")
	assert.Equal(t, 2, result.TestFailures)
}

func TestParseLine_ErrorsAndWarnings(t *testing.T) {
	result := &Result{Action: "build"}

	parseLine(result, "/src/App/Login.swift:10:5: error: cannot find 'user' in scope")
	parseLine(result, "/src/App/Login.swift:22:1: warning: variable 'x' was never used")
	parseLine(result, "ld: warning: duplicate library")
	parseLine(result, "a normal progress line")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "cannot find 'user' in scope", result.Errors[0])
	assert.Equal(t, 2, result.Warnings)
}
