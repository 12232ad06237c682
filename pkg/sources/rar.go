//go:build !norar

package sources

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/nwaples/rardecode/v2"
)

const (
	rarAvailable = true
	rarComponent = "github.com/nwaples/rardecode/v2"
)

var _ Adapter = RarAdapter{}

type RarAdapter struct{}

func (RarAdapter) List(ctx context.Context, path string) (*census.Node, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, &ContainerError{Kind: Rar, Path: path, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	root := census.NewNode(filepath.Base(path))
	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		hdr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ContainerError{Kind: Rar, Path: path, Err: err}
		}
		if hdr.IsDir {
			continue
		}
		census.InsertEntry(root, strings.ReplaceAll(hdr.Name, `\`, "/"))
	}
	census.Aggregate(root)
	return root, nil
}
