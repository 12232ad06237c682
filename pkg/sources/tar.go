package sources

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
)

var _ Adapter = TarAdapter{}

// TarAdapter reads plain, gzip, bzip2, xz and zstd compressed tarballs.
// The compression is recognised from the stream itself.
type TarAdapter struct{}

func (TarAdapter) List(ctx context.Context, path string) (*census.Node, error) {
	f, err := osOpen(path)
	if err != nil {
		return nil, &ContainerError{Kind: Tar, Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	r, _, err := decompress(f)
	if err != nil {
		return nil, &ContainerError{Kind: Tar, Path: path, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	root := census.NewNode(filepath.Base(path))
	tr := tar.NewReader(r)
	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ContainerError{Kind: Tar, Path: path, Err: err}
		}
		switch hdr.Typeflag {
		case tar.TypeDir, tar.TypeXGlobalHeader:
			continue
		}
		if strings.HasSuffix(hdr.Name, "/") {
			continue
		}
		census.InsertEntry(root, hdr.Name)
	}
	census.Aggregate(root)
	return root, nil
}
