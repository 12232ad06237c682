package osfile

import (
	"context"
	"os"

	"github.com/filetug/extcensus/pkg/files"
)

var osReadDir = os.ReadDir

var _ files.Store = (*Store)(nil)

// Store reads directories of the local filesystem.
type Store struct{}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func NewStore() *Store {
	return &Store{}
}
