// Package persist provides the snapshot storage backends for state
// namespaces. Each namespace is stored as a single serialized envelope,
// read once at process start and rewritten on every mutation.
package persist

import (
	"encoding/json"
	"errors"
)

// ErrNoSnapshot is returned by Load when a namespace has never been saved.
var ErrNoSnapshot = errors.New("persist: no snapshot")

// SchemaVersion is written into every envelope so future readers can
// migrate old snapshots.
const SchemaVersion = 1

// Envelope is the serialized form of one namespace snapshot.
type Envelope struct {
	Data          json.RawMessage `json:"data"`
	SchemaVersion int             `json:"schemaVersion,omitempty"`
}

// SnapshotStore persists one envelope per namespace.
//
// Load returns ErrNoSnapshot when the namespace has no stored envelope.
// Save replaces the namespace's envelope; it is called synchronously on
// every mutation of that namespace.
type SnapshotStore interface {
	Load(namespace string) (Envelope, error)
	Save(namespace string, env Envelope) error
}
