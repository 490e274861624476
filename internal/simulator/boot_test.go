package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWaitForBoot_Timeout(t *testing.T) {
	mock := clock.NewMock()
	m := &Manager{
		xcrunPath:    "/nonexistent/xcrun",
		pollInterval: time.Second,
		clock:        mock,
		log:          zap.NewNop(),
	}

	done := make(chan error, 1)
	go func() {
		done <- m.WaitForBoot(context.Background(), "AAAA", 500*time.Millisecond)
	}()

	// Let the goroutine reach the ticker before advancing the clock
	time.Sleep(10 * time.Millisecond)
	mock.Add(time.Second)

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "timeout")
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForBoot did not return")
	}
}

func TestWaitForBoot_ContextCancel(t *testing.T) {
	mock := clock.NewMock()
	m := &Manager{
		xcrunPath:    "/nonexistent/xcrun",
		pollInterval: time.Second,
		clock:        mock,
		log:          zap.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.WaitForBoot(ctx, "AAAA", time.Minute)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForBoot did not return after cancel")
	}
}
