//go:build !no7z

package sources

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/filetug/extcensus/pkg/census"
)

const (
	sevenZipAvailable = true
	sevenZipComponent = "github.com/bodgit/sevenzip"
)

var _ Adapter = SevenZipAdapter{}

type SevenZipAdapter struct{}

func (SevenZipAdapter) List(ctx context.Context, path string) (*census.Node, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, &ContainerError{Kind: SevenZip, Path: path, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	root := census.NewNode(filepath.Base(path))
	for _, f := range r.File {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		// 7z archives made on Windows keep backslash separators.
		census.InsertEntry(root, strings.ReplaceAll(f.Name, `\`, "/"))
	}
	census.Aggregate(root)
	return root, nil
}
