package autosave

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"
)

const (
	DefaultDelay = 2500 * time.Millisecond
	DefaultTTL   = 24 * time.Hour
)

// Saver persists a watched value to a SnapshotStore after a debounce
// window of quiescence. Writes are skipped when the serialized form
// is unchanged from the last saved snapshot. Storage failures are
// logged and reported through the notify callback; the Saver never
// returns an error to the UI loop.
type Saver struct {
	store SnapshotStore
	key   string
	delay time.Duration
	ttl   time.Duration

	debounced func(f func())
	now       func() time.Time
	notify    func(saved bool, err error)
	fallback  func() ([]byte, bool)

	mu        sync.Mutex
	pending   []byte
	lastSaved string
}

// Option configures a Saver.
type Option func(*Saver)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(s *Saver) { s.delay = d }
}

// WithTTL sets the snapshot freshness window used by Load.
func WithTTL(ttl time.Duration) Option {
	return func(s *Saver) { s.ttl = ttl }
}

// WithClock overrides the time source. Tests use this to age
// snapshots without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Saver) { s.now = now }
}

// WithNotify installs a save notification callback. Pass nil to
// suppress notifications.
func WithNotify(fn func(saved bool, err error)) Option {
	return func(s *Saver) { s.notify = fn }
}

// WithFallback installs a loader consulted when no fresh snapshot
// exists.
func WithFallback(fn func() ([]byte, bool)) Option {
	return func(s *Saver) { s.fallback = fn }
}

// NewSaver watches one storage key.
func NewSaver(store SnapshotStore, key string, opts ...Option) *Saver {
	s := &Saver{
		store: store,
		key:   key,
		delay: DefaultDelay,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.debounced = debounce.New(s.delay)
	return s
}

// Update records a new value of the watched state. The write happens
// after the debounce window passes without further updates; only the
// most recent pending value survives.
func (s *Saver) Update(value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("autosave serialize failed", "key", s.key, "error", err)
		return
	}

	s.mu.Lock()
	if string(data) == s.lastSaved {
		// The value reverted to the last snapshot. Disarm any queued
		// flush so an earlier intermediate value is not written.
		s.pending = nil
		s.mu.Unlock()
		return
	}
	s.pending = data
	s.mu.Unlock()

	s.debounced(s.flush)
}

// ForceSave writes the pending value immediately, bypassing the
// debounce. Used by the explicit Save Progress action and on
// shutdown.
func (s *Saver) ForceSave() {
	s.flush()
}

func (s *Saver) flush() {
	s.mu.Lock()
	data := s.pending
	if data == nil || string(data) == s.lastSaved {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	err := s.store.Set(s.key, data)
	if err != nil {
		slog.Error("autosave write failed", "key", s.key, "error", err)
		if s.notify != nil {
			s.notify(false, err)
		}
		return
	}

	s.mu.Lock()
	s.lastSaved = string(data)
	s.mu.Unlock()

	if s.notify != nil {
		s.notify(true, nil)
	}
}

// Load restores the watched value into out. It returns true only
// when a snapshot exists and its timestamp is within the TTL; stale
// or corrupt snapshots are cleared and the fallback loader, if any,
// is consulted. Load never propagates storage errors.
func (s *Saver) Load(out any) bool {
	data, savedAt, err := s.store.Get(s.key)
	if err == nil {
		if s.now().Sub(savedAt) <= s.ttl {
			if uerr := json.Unmarshal(data, out); uerr == nil {
				s.mu.Lock()
				s.lastSaved = string(data)
				s.mu.Unlock()
				return true
			}
			slog.Warn("autosave snapshot corrupt, discarding", "key", s.key)
		} else {
			slog.Debug("autosave snapshot expired", "key", s.key, "savedAt", savedAt)
		}
		if cerr := s.store.Clear(s.key); cerr != nil {
			slog.Warn("autosave clear failed", "key", s.key, "error", cerr)
		}
	} else if err != ErrNotFound {
		slog.Warn("autosave read failed", "key", s.key, "error", err)
	}

	if s.fallback != nil {
		if data, ok := s.fallback(); ok {
			if uerr := json.Unmarshal(data, out); uerr == nil {
				return true
			}
		}
	}
	return false
}

// ClearSaved removes the snapshot and forgets the last saved value.
func (s *Saver) ClearSaved() {
	if err := s.store.Clear(s.key); err != nil {
		slog.Warn("autosave clear failed", "key", s.key, "error", err)
	}
	s.mu.Lock()
	s.lastSaved = ""
	s.pending = nil
	s.mu.Unlock()
}
