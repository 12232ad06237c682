package sources

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/files"
	"github.com/filetug/extcensus/pkg/files/osfile"
	"github.com/filetug/extcensus/pkg/ignore"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

var _ Adapter = DirAdapter{}

// DirAdapter walks a directory tree depth first. Only regular files are
// counted and symlinks are never followed.
// Counts of every node are cumulative, so the tree needs no aggregation pass.
type DirAdapter struct {
	Store  files.Store
	Ignore *ignore.Matcher
	Logger logrus.FieldLogger
}

func (a DirAdapter) List(ctx context.Context, path string) (*census.Node, error) {
	if a.Store == nil {
		a.Store = osfile.NewStore()
	}
	if a.Logger == nil {
		a.Logger = logrus.StandardLogger()
	}
	root := census.NewNode(baseName(path))
	if _, err := a.walk(ctx, root, path); err != nil {
		return nil, err
	}
	return root, nil
}

// walk fills node and returns the counts of its whole subtree.
// The returned map belongs to node; callers only read it.
func (a DirAdapter) walk(ctx context.Context, node *census.Node, path string) (census.ExtCounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := a.Store.ReadDir(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			a.Logger.WithField("path", path).WithError(err).Warn("permission denied")
			node.PermissionDenied = true
			return node.Counts, nil
		}
		return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
	}
	sortEntries(entries)

	counts := node.Counts
	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())
		switch {
		case entry.IsDir():
			if a.Ignore.Ignored(entryPath, true) {
				continue
			}
			child := node.AddChild(census.NewNode(entry.Name()))
			sub, err := a.walk(ctx, child, entryPath)
			if err != nil {
				return nil, err
			}
			counts.Merge(sub)
		case entry.Type().IsRegular():
			if a.Ignore.Ignored(entryPath, false) {
				continue
			}
			counts.Add(census.ExtOf(entry.Name()), 1)
		}
	}
	return counts, nil
}

// sortEntries orders entries by case folded name; equal folds keep a stable
// order by raw name.
func sortEntries(entries []os.DirEntry) {
	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.Name()] = fold.String(e.Name())
	}
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		if c := cmp.Compare(keys[a.Name()], keys[b.Name()]); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
}

func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}
