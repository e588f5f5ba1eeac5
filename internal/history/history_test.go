package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	entries []wellness.DailyEntry
	limit   int
	err     error
}

func (f *fakeLister) ListEntries(limit int) ([]wellness.DailyEntry, error) {
	f.limit = limit
	return f.entries, f.err
}

func TestStoreSource(t *testing.T) {
	f := &fakeLister{entries: []wellness.DailyEntry{{ID: "a"}, {ID: "b"}}}
	got, err := NewStoreSource(f).Recent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, f.limit)
	assert.Len(t, got, 2)

	f.err = errors.New("boom")
	_, err = NewStoreSource(f).Recent(context.Background(), 7)
	assert.EqualError(t, err, "boom")
}

func TestStoreSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStoreSource(&fakeLister{}).Recent(ctx, 7)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeededSource_Deterministic(t *testing.T) {
	end := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	a, err := NewSeededSource(42, end, 7).Recent(context.Background(), 0)
	require.NoError(t, err)
	b, err := NewSeededSource(42, end, 7).Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	require.Len(t, a, 7)
	assert.Equal(t, "2026-10-10", a[0].Date)
	assert.Equal(t, "2026-10-16", a[6].Date)
	for _, e := range a {
		e := e
		assert.NoError(t, wellness.ValidateEntry(&e), "generated entry %s must be valid", e.Date)
	}
}

func TestSeededSource_Limit(t *testing.T) {
	end := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	got, err := NewSeededSource(1, end, 10).Recent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-10-16", got[2].Date)
}
