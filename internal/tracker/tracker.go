// Package tracker ties the wellness session to its collaborators: the
// recommendation engine, the history source, persistence, notifications and
// the optional animation. The CLI, the HTTP API and the MCP tools all go
// through a Tracker, which serialises access to the session.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blackwell-systems/mindpatch/internal/animation"
	"github.com/blackwell-systems/mindpatch/internal/history"
	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/notify"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// ErrNoEntries is returned when a suggestion is requested before any entry
// has been logged.
var ErrNoEntries = errors.New("no entries logged yet")

// Store is the persistence the tracker writes through to. Each Save call
// must be atomic.
type Store interface {
	LoadState() (session.State, error)
	SaveEntry(e wellness.DailyEntry, xp int) error
	SaveHabitToggle(day string, done bool, streak, xp int) error
	SaveGratitude(n wellness.GratitudeNote, xp int) (int64, error)
	Reset() error
}

// Sender delivers celebration messages.
type Sender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Options configures a Tracker. Only Engine is required.
type Options struct {
	Session        session.Options
	Engine         *suggest.Engine
	Store          Store
	History        history.Source
	Animation      animation.Fetcher
	Notifier       Sender
	GratitudeLimit int
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	sess    *session.Session
	engine  *suggest.Engine
	db      Store
	history history.Source
	anim    animation.Fetcher
	notify  Sender
	limit   int
	pending []notify.Message
}

// New builds a Tracker and hydrates the session from the store.
func New(opts Options) (*Tracker, error) {
	if opts.Engine == nil {
		opts.Engine = suggest.NewEngine()
	}
	if opts.Animation == nil {
		opts.Animation = animation.Disabled{}
	}
	if opts.GratitudeLimit <= 0 {
		opts.GratitudeLimit = 5
	}

	t := &Tracker{
		engine: opts.Engine,
		db:     opts.Store,
		anim:   opts.Animation,
		notify: opts.Notifier,
		limit:  opts.GratitudeLimit,
	}

	sopts := opts.Session
	userHook := sopts.OnLevelUp
	sopts.OnLevelUp = func(ev session.LevelUp) {
		t.pending = append(t.pending, notify.LevelUp(ev))
		if userHook != nil {
			userHook(ev)
		}
	}
	t.sess = session.New(sopts)

	if t.db != nil {
		st, err := t.db.LoadState()
		if err != nil {
			return nil, fmt.Errorf("loading state: %w", err)
		}
		t.sess.Restore(st)
	}

	t.history = opts.History
	if t.history == nil {
		t.history = sessionSource{t}
	}
	return t, nil
}

// sessionSource serves history from the in-memory session when no other
// source is configured.
type sessionSource struct{ t *Tracker }

func (s sessionSource) Recent(ctx context.Context, n int) ([]wellness.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return s.t.sess.History(n), nil
}

// mutate runs fn against the session and persists through save. When save
// fails the session is rolled back and queued notifications are dropped.
func (t *Tracker) mutate(fn func() error, save func() error) error {
	snapshot := t.sess.State()
	t.pending = t.pending[:0]

	if err := fn(); err != nil {
		t.sess.Restore(snapshot)
		t.pending = t.pending[:0]
		return err
	}
	if t.db != nil && save != nil {
		if err := save(); err != nil {
			t.sess.Restore(snapshot)
			t.pending = t.pending[:0]
			return fmt.Errorf("saving: %w", err)
		}
	}
	return nil
}

// flush sends queued notifications. Delivery failures are logged only.
func (t *Tracker) flush(ctx context.Context, msgs []notify.Message) {
	if t.notify == nil {
		return
	}
	for _, m := range msgs {
		if err := t.notify.Send(ctx, m); err != nil {
			logger.Debug("notification failed", "title", m.Title, "err", err)
		}
	}
}

// takePending returns and clears the queued notifications. Callers hold mu.
func (t *Tracker) takePending() []notify.Message {
	out := append([]notify.Message(nil), t.pending...)
	t.pending = t.pending[:0]
	return out
}
