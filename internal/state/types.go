package state

import "time"

// Namespace names. Each maps to one persisted snapshot, except
// NamespaceSelection which is session-scoped.
const (
	NamespaceIdentity  = "identity"
	NamespaceWorkspace = "workspace"
	NamespaceSelection = "selection"
	NamespaceUIPrefs   = "uiprefs"
)

// User is the signed-in identity. A nil *User means signed out.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Workspace groups imported transcripts.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkspaceState is the workspace namespace: the known workspaces plus the
// active one. Current is not required to be a member of List; setting an
// unlisted workspace is accepted behavior.
type WorkspaceState struct {
	Current Workspace   `json:"current"`
	List    []Workspace `json:"list"`
}

// Benchmark is a user-assembled group of chunks compared side by side.
type Benchmark struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ChunkIDs []string `json:"chunkIds"`
}

// ParallelChat is a follow-up conversation forked from a chunk.
type ParallelChat struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SourceChunkID string    `json:"sourceChunkId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SelectionState is the active-selection namespace. It is session-scoped:
// hydration applies defaults and nothing is ever written to disk.
// Appends do not de-duplicate by id; two entries with the same id are two
// entries.
type SelectionState struct {
	Benchmarks    []Benchmark    `json:"benchmarks"`
	ParallelChats []ParallelChat `json:"parallelChats"`
}

// UIPrefs is the ui-prefs namespace: layout state that should survive a
// reload. Every setter writes through so the next start resumes the same
// layout.
type UIPrefs struct {
	SidebarCollapsed bool            `json:"sidebarCollapsed"`
	Theme            string          `json:"theme,omitempty"`
	PageLimit        int             `json:"pageLimit,omitempty"`
	Flags            map[string]bool `json:"flags,omitempty"`
}

func defaultIdentity() *User { return nil }

func defaultWorkspace() WorkspaceState { return WorkspaceState{} }

func defaultSelection() SelectionState { return SelectionState{} }

func defaultUIPrefs() UIPrefs {
	return UIPrefs{Flags: map[string]bool{}}
}
