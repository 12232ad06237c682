package files

import (
	"os"
	"time"
)

// FileInfo is the os.FileInfo of a synthetic DirEntry. It carries no size or time.
type FileInfo struct {
	DirEntry
}

func (f *FileInfo) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}
func (f *FileInfo) Size() int64 { return 0 }
func (f *FileInfo) Mode() os.FileMode {
	if f == nil {
		return 0
	}
	return f.Type()
}
func (f *FileInfo) ModTime() time.Time { return time.Time{} }
func (f *FileInfo) IsDir() bool {
	if f == nil {
		return false
	}
	return f.DirEntry.IsDir()
}
func (f *FileInfo) Sys() any { return nil }
