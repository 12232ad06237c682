package sources

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/filetug/extcensus/pkg/fsutils"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

var (
	osStat = os.Stat
	osOpen = os.Open
)

// The end of central directory record sits in the last 22 bytes plus an
// optional comment of up to 64KiB.
const zipTailSize = 22 + 1<<16

const tarBlockSize = 512

var (
	zipEndSignature = []byte("PK\x05\x06")

	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect classifies path. Directories win, then content signatures
// (zip before tar), then the .7z and .rar suffixes; anything else is a plain file.
func Detect(path string) (Container, error) {
	info, err := osStat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Container{}, notFound(path)
		}
		return Container{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Container{Kind: Directory, Path: path}, nil
	}
	if isZip(path) {
		return Container{Kind: Zip, Path: path}, nil
	}
	if compression, ok := sniffTar(path); ok {
		return Container{Kind: Tar, Path: path, Compression: compression}, nil
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".7z"):
		return Container{Kind: SevenZip, Path: path}, nil
	case strings.HasSuffix(lower, ".rar"):
		return Container{Kind: Rar, Path: path}, nil
	}
	return Container{Kind: PlainFile, Path: path}, nil
}

func isZip(path string) bool {
	tail, err := fsutils.ReadFileData(path, -zipTailSize)
	if err != nil {
		return false
	}
	return bytes.LastIndex(tail, zipEndSignature) >= 0
}

func sniffTar(path string) (Compression, bool) {
	f, err := osOpen(path)
	if err != nil {
		return NoCompression, false
	}
	defer func() {
		_ = f.Close()
	}()
	r, compression, err := decompress(f)
	if err != nil {
		return NoCompression, false
	}
	defer func() {
		_ = r.Close()
	}()
	if !isTarStream(r) {
		return NoCompression, false
	}
	return compression, true
}

// isTarStream reports whether r starts with a tar header block. A stream
// whose first block is all zeros is an empty archive; anything shorter than
// one block is not a tar.
func isTarStream(r io.Reader) bool {
	block := make([]byte, tarBlockSize)
	if _, err := io.ReadFull(r, block); err != nil {
		return false
	}
	if bytes.Equal(block, make([]byte, tarBlockSize)) {
		return true
	}
	_, err := tar.NewReader(io.MultiReader(bytes.NewReader(block), r)).Next()
	return err == nil
}

// decompress picks a decoder by the stream's magic bytes.
// Streams without a known magic are returned as is.
func decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(xzMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, Gzip, err
		}
		return zr, Gzip, nil
	case bytes.HasPrefix(head, bzip2Magic):
		return io.NopCloser(bzip2.NewReader(br)), Bzip2, nil
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, XZ, err
		}
		return io.NopCloser(xr), XZ, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, Zstd, err
		}
		return dec.IOReadCloser(), Zstd, nil
	}
	return io.NopCloser(br), NoCompression, nil
}
