package knapsack_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/knapsack"
)

func TestBasicObserver(t *testing.T) {
	obs := &knapsack.BasicObserver{}
	items, capacity := classic()

	res, err := knapsack.Solve(items, capacity, knapsack.WithObserver(obs))
	require.NoError(t, err)
	_, err = knapsack.Solve(items, capacity, knapsack.WithObserver(obs), knapsack.WithNodeBudget(1))
	require.NoError(t, err)

	require.Equal(t, int64(2), obs.Solves.Load())
	require.Equal(t, int64(1), obs.Converged.Load())
	require.Equal(t, int64(1), obs.Exceeded.Load())
	require.Zero(t, obs.Failures.Load())
	require.Equal(t, int64(res.Stats.Improvements), obs.Improvements.Load())
	require.Equal(t, int64(res.Stats.Expanded+1), obs.Expanded.Load())
}

func TestLoggerReceivesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	items, capacity := classic()

	_, err := knapsack.Solve(items, capacity, knapsack.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.Contains(out, "search started"))
	require.True(t, strings.Contains(out, "incumbent improved"))
	require.True(t, strings.Contains(out, "search finished"))
	require.True(t, strings.Contains(out, "status=converged"))
}
