package store

import (
	"fmt"

	"github.com/hupe1980/immunomesh/core"
)

// NewStore constructs a run store by backend kind: "memory" (default) or
// "sqlite" with a database path.
func NewStore(kind, sqlitePath string) (core.RunStore, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if sqlitePath == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes stores that hold external resources.
func CloseIfSupported(s core.RunStore) error {
	closer, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
