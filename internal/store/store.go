package store

// Snapshot is one named persisted collection: a flat user-keyed mapping
// loaded and rewritten as a whole on every mutation.
type Snapshot[V any] interface {
	Load() (map[string]V, error)
	Save(m map[string]V) error
}
