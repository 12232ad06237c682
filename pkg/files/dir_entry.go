package files

import (
	"os"
	"path/filepath"
)

// NewDirEntry creates an entry of the given type (os.ModeDir, os.ModeSymlink, 0 for regular files).
func NewDirEntry(name string, typ os.FileMode) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	return DirEntry{
		name: name,
		typ:  typ.Type(),
	}
}

// NewFileEntry is a shortcut for a regular file entry.
func NewFileEntry(name string) DirEntry {
	return NewDirEntry(name, 0)
}

// NewSubDirEntry is a shortcut for a directory entry.
func NewSubDirEntry(name string) DirEntry {
	return NewDirEntry(name, os.ModeDir)
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name string
	typ  os.FileMode
}

func (d DirEntry) Name() string      { return d.name }
func (d DirEntry) IsDir() bool       { return d.typ.IsDir() }
func (d DirEntry) Type() os.FileMode { return d.typ }
func (d DirEntry) Info() (os.FileInfo, error) {
	return &FileInfo{DirEntry: d}, nil
}
