package files

import (
	"context"
	"os"
)

// Store lists directory entries. Sources read directories through a Store
// so tests can replace the local filesystem.
type Store interface {
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context, name string) ([]os.DirEntry, error)

func (f StoreFunc) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	return f(ctx, name)
}
