package state

import (
	"sync"

	"github.com/pranavsinghpatil/meshmemory/internal/state/persist"
)

// Store is the facade over all state namespaces. It re-exports each
// namespace's operations but deliberately has no combined "everything
// hydrated" flag: callers check the specific namespace their read depends
// on via the slice's IsHydrated.
type Store struct {
	Identity  *Slice[*User]
	Workspace *Slice[WorkspaceState]
	Selection *Slice[SelectionState]
	UIPrefs   *Slice[UIPrefs]
}

// New creates the store. Identity, workspace and ui-prefs persist through
// snapshots; the selection namespace is session-scoped and gets no backing
// store.
func New(snapshots persist.SnapshotStore) *Store {
	return &Store{
		Identity:  NewSlice(NamespaceIdentity, snapshots, defaultIdentity),
		Workspace: NewSlice(NamespaceWorkspace, snapshots, defaultWorkspace),
		Selection: NewSlice[SelectionState](NamespaceSelection, nil, defaultSelection),
		UIPrefs:   NewSlice(NamespaceUIPrefs, snapshots, defaultUIPrefs),
	}
}

// Hydrate starts hydration of every namespace, each in its own goroutine
// so one slow snapshot never delays the others.
func (s *Store) Hydrate() {
	go s.Identity.Hydrate()
	go s.Workspace.Hydrate()
	go s.Selection.Hydrate()
	go s.UIPrefs.Hydrate()
}

// HydrateWait hydrates every namespace and blocks until all are done.
// Used by one-shot CLI commands that read state immediately.
func (s *Store) HydrateWait() {
	var wg sync.WaitGroup
	for _, fn := range []func(){
		s.Identity.Hydrate,
		s.Workspace.Hydrate,
		s.Selection.Hydrate,
		s.UIPrefs.Hydrate,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}

// Reset replaces every namespace with its defaults and re-persists them.
// This is the explicit sign-out/reset operation.
func (s *Store) Reset() {
	s.Identity.Reset()
	s.Workspace.Reset()
	s.Selection.Reset()
	s.UIPrefs.Reset()
}

// SetUser replaces the identity atomically. nil signs the user out of the
// identity namespace only; other namespaces are untouched.
func (s *Store) SetUser(u *User) {
	s.Identity.Set(u)
}

// User returns the current identity, nil when signed out.
func (s *Store) User() *User {
	return s.Identity.Get()
}

// SetCurrentWorkspace makes ws the active workspace. Membership in the
// workspace list is not checked: setting an unlisted workspace succeeds.
func (s *Store) SetCurrentWorkspace(ws Workspace) {
	s.Workspace.Update(func(w WorkspaceState) WorkspaceState {
		w.Current = ws
		return w
	})
}

// CurrentWorkspace returns the active workspace.
func (s *Store) CurrentWorkspace() Workspace {
	return s.Workspace.Get().Current
}

// AddWorkspace appends ws to the workspace list.
func (s *Store) AddWorkspace(ws Workspace) {
	s.Workspace.Update(func(w WorkspaceState) WorkspaceState {
		w.List = append(cloneSlice(w.List), ws)
		return w
	})
}

// Workspaces returns the known workspace list.
func (s *Store) Workspaces() []Workspace {
	return s.Workspace.Get().List
}

// AddBenchmark appends b without de-duplication: adding the same id twice
// yields two entries.
func (s *Store) AddBenchmark(b Benchmark) {
	s.Selection.Update(func(sel SelectionState) SelectionState {
		sel.Benchmarks = append(cloneSlice(sel.Benchmarks), b)
		return sel
	})
}

// RemoveBenchmark removes all benchmarks with the given id. Removing an
// unknown id is a no-op.
func (s *Store) RemoveBenchmark(id string) {
	s.Selection.Update(func(sel SelectionState) SelectionState {
		sel.Benchmarks = filterByID(sel.Benchmarks, id, func(b Benchmark) string { return b.ID })
		return sel
	})
}

// Benchmarks returns the current benchmark list.
func (s *Store) Benchmarks() []Benchmark {
	return s.Selection.Get().Benchmarks
}

// AddParallelChat appends c without de-duplication.
func (s *Store) AddParallelChat(c ParallelChat) {
	s.Selection.Update(func(sel SelectionState) SelectionState {
		sel.ParallelChats = append(cloneSlice(sel.ParallelChats), c)
		return sel
	})
}

// RemoveParallelChat removes all parallel chats with the given id. Removing
// an unknown id is a no-op.
func (s *Store) RemoveParallelChat(id string) {
	s.Selection.Update(func(sel SelectionState) SelectionState {
		sel.ParallelChats = filterByID(sel.ParallelChats, id, func(c ParallelChat) string { return c.ID })
		return sel
	})
}

// ParallelChats returns the current parallel-chat list.
func (s *Store) ParallelChats() []ParallelChat {
	return s.Selection.Get().ParallelChats
}

// SetSidebarCollapsed sets the sidebar layout state and writes it through.
func (s *Store) SetSidebarCollapsed(collapsed bool) {
	s.UIPrefs.Update(func(p UIPrefs) UIPrefs {
		p.SidebarCollapsed = collapsed
		return p
	})
}

// ToggleSidebar flips the sidebar layout state.
func (s *Store) ToggleSidebar() {
	s.UIPrefs.Update(func(p UIPrefs) UIPrefs {
		p.SidebarCollapsed = !p.SidebarCollapsed
		return p
	})
}

// SidebarCollapsed returns the sidebar layout state.
func (s *Store) SidebarCollapsed() bool {
	return s.UIPrefs.Get().SidebarCollapsed
}

// ToggleFlag flips a named ui-prefs boolean. Toggling twice restores the
// original value.
func (s *Store) ToggleFlag(name string) {
	s.UIPrefs.Update(func(p UIPrefs) UIPrefs {
		flags := make(map[string]bool, len(p.Flags)+1)
		for k, v := range p.Flags {
			flags[k] = v
		}
		flags[name] = !flags[name]
		p.Flags = flags
		return p
	})
}

// Flag returns a named ui-prefs boolean, false when never set.
func (s *Store) Flag(name string) bool {
	return s.UIPrefs.Get().Flags[name]
}

// SetTheme records the active theme name.
func (s *Store) SetTheme(name string) {
	s.UIPrefs.Update(func(p UIPrefs) UIPrefs {
		p.Theme = name
		return p
	})
}

// SetPageLimit records the preferred page size.
func (s *Store) SetPageLimit(limit int) {
	s.UIPrefs.Update(func(p UIPrefs) UIPrefs {
		p.PageLimit = limit
		return p
	})
}

// PageLimit returns the preferred page size, 0 when never set.
func (s *Store) PageLimit() int {
	return s.UIPrefs.Get().PageLimit
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func filterByID[T any](in []T, id string, idOf func(T) string) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}
