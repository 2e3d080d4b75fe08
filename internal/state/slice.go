// Package state holds the durable cross-screen application state, split
// into independently hydrating namespaces. Each namespace lives in its own
// Slice so a slow or failed load of one never blocks readiness of another.
package state

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pranavsinghpatil/meshmemory/internal/core/logging"
	"github.com/pranavsinghpatil/meshmemory/internal/state/persist"
)

// Slice is a typed state container for one namespace. Contents are not
// authoritative until IsHydrated reports true; reading earlier yields the
// namespace defaults, not the user's persisted state.
type Slice[T any] struct {
	ns       string
	store    persist.SnapshotStore // nil = session-scoped, never persisted
	defaults func() T
	log      zerolog.Logger

	mu       sync.RWMutex
	data     T
	hydrated bool
	mutated  bool
	once     sync.Once

	subMu   sync.Mutex
	subs    map[int]func(T)
	nextSub int
}

// NewSlice creates a slice for the given namespace. A nil store makes the
// slice session-scoped: Hydrate applies defaults and mutations are never
// written anywhere.
func NewSlice[T any](namespace string, store persist.SnapshotStore, defaults func() T) *Slice[T] {
	return &Slice[T]{
		ns:       namespace,
		store:    store,
		defaults: defaults,
		log:      logging.Component("state").With().Str("namespace", namespace).Logger(),
		data:     defaults(),
		subs:     make(map[int]func(T)),
	}
}

// Namespace returns the namespace name.
func (s *Slice[T]) Namespace() string { return s.ns }

// IsHydrated reports whether the persisted snapshot (or defaults) has been
// applied. It flips false to true exactly once and never reverts.
func (s *Slice[T]) IsHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Hydrate loads the namespace's persisted snapshot and applies it, falling
// back to defaults when no snapshot exists or the snapshot cannot be read.
// A value mutated while the load was in flight is never overwritten: the
// mutation is newer than anything the snapshot holds, and Set has already
// written it through. Only the first call has any effect.
func (s *Slice[T]) Hydrate() {
	s.once.Do(func() {
		data := s.defaults()

		if s.store != nil {
			env, err := s.store.Load(s.ns)
			switch {
			case err == nil:
				if uerr := json.Unmarshal(env.Data, &data); uerr != nil {
					s.log.Error().Err(uerr).Msg("corrupt snapshot, using defaults")
					data = s.defaults()
				}
			case errors.Is(err, persist.ErrNoSnapshot):
				// first run for this namespace
			default:
				s.log.Error().Err(err).Msg("load snapshot failed, using defaults")
			}
		}

		s.mu.Lock()
		if s.mutated {
			data = s.data
		} else {
			s.data = data
		}
		s.hydrated = true
		s.mu.Unlock()

		s.notify(data)
	})
}

// Get returns the current value of the slice.
func (s *Slice[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Set replaces the slice value and writes it through to the snapshot store.
// A persistence failure never fails the mutation: the in-memory value is
// already updated and the error is only logged, so in-memory and persisted
// state can diverge until the next successful write.
func (s *Slice[T]) Set(v T) {
	s.mu.Lock()
	s.data = v
	s.mutated = true
	s.mu.Unlock()

	s.persist(v)
	s.notify(v)
}

// Update applies fn to the current value and stores the result.
func (s *Slice[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.data)
	s.data = v
	s.mutated = true
	s.mu.Unlock()

	s.persist(v)
	s.notify(v)
}

// Reset replaces the slice with its defaults and re-persists them. This is
// the only way a slice is ever "destroyed" (explicit sign-out/reset).
func (s *Slice[T]) Reset() {
	s.Set(s.defaults())
}

// Subscribe registers fn to be called after every applied change, including
// hydration. The returned function removes the subscription.
func (s *Slice[T]) Subscribe(fn func(T)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Slice[T]) persist(v T) {
	if s.store == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("encode snapshot failed")
		return
	}

	env := persist.Envelope{Data: data, SchemaVersion: persist.SchemaVersion}
	if err := s.store.Save(s.ns, env); err != nil {
		// In-memory state has already moved on; surface the divergence in
		// the log but never to the caller.
		s.log.Error().Err(err).Msg("persist write failed, in-memory state diverges")
	}
}

// notify runs outside the data mutex, so two racing writers can deliver
// notifications out of order relative to the installed values. Fine under
// the single-active-writer assumption.
func (s *Slice[T]) notify(v T) {
	s.subMu.Lock()
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
