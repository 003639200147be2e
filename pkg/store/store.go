package store

import "errors"

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// SessionStore is the keyed session state mapping. Implementations must
// serialize writers per session id while leaving unrelated sessions
// unaffected; Lock is how the workflow engine claims a session for the
// duration of a run.
type SessionStore interface {
	// Create assigns a fresh id and persists a session at the extract step.
	Create(rawText, fileName, templateID string) (*Session, error)

	// Get returns a copy of the session or ErrNotFound.
	Get(id string) (*Session, error)

	// Save persists the full session state. The write is atomic per session.
	Save(sess *Session) error

	// Exists reports whether the id is known.
	Exists(id string) bool

	// Lock claims the per-session mutex and returns the release func.
	Lock(id string) (unlock func())
}
