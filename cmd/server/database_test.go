package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWaiter(ping func(ctx context.Context) error, buf *bytes.Buffer) (*databaseWaiter, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	w := &databaseWaiter{
		ping: ping,
		sleep: func(ctx context.Context, d time.Duration) error {
			*sleeps = append(*sleeps, d)
			return nil
		},
		delay:  5 * time.Second,
		logger: slog.New(slog.NewJSONHandler(buf, nil)),
	}
	return w, sleeps
}

func TestWaiterImmediateSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, sleeps := newTestWaiter(func(ctx context.Context) error { return nil }, &buf)

	err := w.wait(context.Background())
	require.NoError(t, err)

	assert.Empty(t, *sleeps, "no retries when the first ping succeeds")
	assert.NotContains(t, buf.String(), "waiting for database")
}

func TestWaiterRetriesUntilReady(t *testing.T) {
	t.Parallel()

	const failures = 7

	var buf bytes.Buffer
	attempts := 0
	w, sleeps := newTestWaiter(func(ctx context.Context) error {
		attempts++
		if attempts <= failures {
			return errors.New("connection refused")
		}
		return nil
	}, &buf)

	err := w.wait(context.Background())
	require.NoError(t, err)

	// One diagnostic per failed attempt, nothing more.
	assert.Equal(t, failures, strings.Count(buf.String(), "waiting for database"))
	assert.Equal(t, failures+1, attempts)

	// The retry delay is fixed, never backed off.
	require.Len(t, *sleeps, failures)
	for _, d := range *sleeps {
		assert.Equal(t, 5*time.Second, d)
	}
}

func TestWaiterAbortsOnContextCancel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, _ := newTestWaiter(func(ctx context.Context) error {
		return errors.New("connection refused")
	}, &buf)
	w.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	t.Run("completes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := sleepContext(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
