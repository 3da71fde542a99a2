//go:build unit

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCounterStoreEvictsExpiredWindows(t *testing.T) {
	store := NewMemoryCounterStore().(*memoryCounterStore)
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	store.Increment("general:10.0.0.1", now, window)
	store.Increment("general:10.0.0.2", now, window)
	require.Len(t, store.windows, 2)

	// A fresh key after both windows and the sweep interval have elapsed
	// drops the stale entries instead of accumulating alongside them.
	later := now.Add(window + sweepEvery)
	store.Increment("general:10.0.0.3", later, window)

	assert.Len(t, store.windows, 1)
	assert.Contains(t, store.windows, "general:10.0.0.3")
}

func TestMemoryCounterStoreSweepKeepsLiveWindows(t *testing.T) {
	store := NewMemoryCounterStore().(*memoryCounterStore)
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	store.Increment("auth:10.0.0.1", now, time.Hour)
	store.Increment("general:10.0.0.1", now.Add(time.Minute), 15*time.Minute)

	// The general window has expired by the next sweep, the auth one has not.
	later := now.Add(20*time.Minute + sweepEvery)
	store.Increment("general:10.0.0.2", later, 15*time.Minute)

	assert.Contains(t, store.windows, "auth:10.0.0.1")
	assert.NotContains(t, store.windows, "general:10.0.0.1")
}
