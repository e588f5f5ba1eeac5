// Package history supplies recent daily entries to the insight view. The
// production source reads the store; the seeded source produces a
// deterministic demo history and is never the default.
package history

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// Source returns up to n of the most recent entries in chronological order.
type Source interface {
	Recent(ctx context.Context, n int) ([]wellness.DailyEntry, error)
}

// EntryLister is the slice of the store a StoreSource needs.
type EntryLister interface {
	ListEntries(limit int) ([]wellness.DailyEntry, error)
}

// StoreSource reads history from the persistence layer.
type StoreSource struct {
	db EntryLister
}

// NewStoreSource wraps a store.
func NewStoreSource(db EntryLister) *StoreSource {
	return &StoreSource{db: db}
}

// Recent implements Source.
func (s *StoreSource) Recent(ctx context.Context, n int) ([]wellness.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.db.ListEntries(n)
}

// SeededSource generates a plausible history from a fixed seed. The same
// seed and end date always produce the same entries.
type SeededSource struct {
	seed uint64
	end  time.Time
	days int
}

// NewSeededSource creates a demo source covering days days up to end.
func NewSeededSource(seed uint64, end time.Time, days int) *SeededSource {
	if days <= 0 {
		days = 7
	}
	return &SeededSource{seed: seed, end: end, days: days}
}

// Recent implements Source.
func (s *SeededSource) Recent(ctx context.Context, n int) ([]wellness.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	out := make([]wellness.DailyEntry, 0, s.days)
	for i := s.days - 1; i >= 0; i-- {
		day := s.end.AddDate(0, 0, -i)
		b := &wellness.Breakdown{
			Study:         halfHours(rng, 0, 6),
			Social:        halfHours(rng, 0, 5),
			Entertainment: halfHours(rng, 0, 3),
		}
		// Heavier social days skew toward lower moods.
		mood := 5 - int(b.Social/1.5) - rng.IntN(2)
		mood = max(int(wellness.MoodMin), min(int(wellness.MoodMax), mood))

		out = append(out, wellness.DailyEntry{
			ID:         "demo-" + day.Format(wellness.DateFormat),
			Date:       day.Format(wellness.DateFormat),
			Mood:       wellness.Mood(mood),
			ScreenTime: b.Total(),
			Breakdown:  b,
			CreatedAt:  day.UTC(),
		})
	}

	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

// halfHours draws a value in [lo, hi] on the 0.5h grid the log form uses.
func halfHours(rng *rand.Rand, lo, hi float64) float64 {
	steps := int((hi - lo) * 2)
	return lo + float64(rng.IntN(steps+1))/2
}
