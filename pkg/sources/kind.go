// Package sources turns a path into a census tree. It recognises directories,
// zip and tar archives (optionally compressed), 7z and rar archives and
// plain files, and dispatches each to the matching adapter.
package sources

import (
	"context"

	"github.com/filetug/extcensus/pkg/census"
)

// Kind identifies what a path points to.
type Kind int

const (
	Directory Kind = iota
	Zip
	Tar
	SevenZip
	Rar
	PlainFile
)

var kindNames = map[Kind]string{
	Directory: "directory",
	Zip:       "zip",
	Tar:       "tar",
	SevenZip:  "7z",
	Rar:       "rar",
	PlainFile: "file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Compression of a tar stream.
type Compression string

const (
	NoCompression Compression = ""
	Gzip          Compression = "gzip"
	Bzip2         Compression = "bzip2"
	XZ            Compression = "xz"
	Zstd          Compression = "zstd"
)

// Container is the result of Detect. Compression is only set for Tar.
type Container struct {
	Kind        Kind
	Path        string
	Compression Compression
}

// Adapter enumerates one container and returns its fully aggregated tree.
type Adapter interface {
	List(ctx context.Context, path string) (*census.Node, error)
}
