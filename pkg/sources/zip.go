package sources

import (
	"archive/zip"
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
)

var _ Adapter = ZipAdapter{}

type ZipAdapter struct{}

func (ZipAdapter) List(ctx context.Context, path string) (*census.Node, error) {
	r, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, &ContainerError{Kind: Zip, Path: path, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	root := census.NewNode(filepath.Base(path))
	for _, f := range r.File {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		census.InsertEntry(root, f.Name)
	}
	census.Aggregate(root)
	return root, nil
}
