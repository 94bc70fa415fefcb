package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootSequenceOrderAndSingleServe(t *testing.T) {
	t.Parallel()

	var steps []string

	err := bootSequence(context.Background(),
		func(ctx context.Context) error {
			steps = append(steps, "wait")
			return nil
		},
		func() error {
			steps = append(steps, "migrate")
			return nil
		},
		func(ctx context.Context) error {
			steps = append(steps, "serve")
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"wait", "migrate", "serve"}, steps,
		"serve runs exactly once, after migrations")
}

func TestBootSequenceMigrationFailureStopsBeforeServe(t *testing.T) {
	t.Parallel()

	migrationErr := errors.New("migration 2 failed: column already exists")
	serveCalls := 0

	err := bootSequence(context.Background(),
		func(ctx context.Context) error { return nil },
		func() error { return migrationErr },
		func(ctx context.Context) error {
			serveCalls++
			return nil
		})

	require.ErrorIs(t, err, migrationErr)
	assert.Zero(t, serveCalls, "the server must never start after a migration failure")
}

func TestBootSequenceWaitFailureStopsEverything(t *testing.T) {
	t.Parallel()

	migrateCalls := 0
	serveCalls := 0

	err := bootSequence(context.Background(),
		func(ctx context.Context) error { return context.Canceled },
		func() error {
			migrateCalls++
			return nil
		},
		func(ctx context.Context) error {
			serveCalls++
			return nil
		})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, migrateCalls)
	assert.Zero(t, serveCalls)
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.0.0.0:8000", serverAddr(8000))
	assert.Equal(t, "0.0.0.0:9090", serverAddr(9090))
}
