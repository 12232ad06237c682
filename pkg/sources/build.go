package sources

import (
	"context"
	"errors"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/files"
	"github.com/filetug/extcensus/pkg/fsutils"
	"github.com/filetug/extcensus/pkg/ignore"
	"github.com/sirupsen/logrus"
)

type options struct {
	logger    logrus.FieldLogger
	store     files.Store
	ignore    *ignore.Matcher
	gitignore bool
	registry  Registry
}

type Option func(o *options)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore replaces the filesystem used to list directories.
func WithStore(store files.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func WithIgnore(matcher *ignore.Matcher) Option {
	return func(o *options) {
		o.ignore = matcher
	}
}

// WithGitignore loads .gitignore rules from the walked directory itself.
func WithGitignore() Option {
	return func(o *options) {
		o.gitignore = true
	}
}

// WithRegistry overrides the capabilities compiled into the binary.
func WithRegistry(registry Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

var loadIgnore = ignore.Load

// Build normalizes rawPath, detects what it points to and returns its census tree.
func Build(ctx context.Context, rawPath string, opts ...Option) (*census.Node, error) {
	o := options{
		logger:   logrus.StandardLogger(),
		registry: capabilities,
	}
	for _, opt := range opts {
		opt(&o)
	}

	path := fsutils.NormalizePath(rawPath)
	c, err := Detect(path)
	if err != nil {
		return nil, err
	}
	log := o.logger.WithFields(logrus.Fields{"path": path, "kind": c.Kind.String()})
	log.Debug("building census")

	switch c.Kind {
	case Directory:
		matcher := o.ignore
		if matcher == nil && o.gitignore {
			if matcher, err = loadIgnore(path); err != nil {
				log.WithError(err).Warn("failed to load ignore rules")
			}
		}
		return DirAdapter{Store: o.store, Ignore: matcher, Logger: o.logger}.List(ctx, path)
	case Zip:
		return ZipAdapter{}.List(ctx, path)
	case Tar:
		return TarAdapter{}.List(ctx, path)
	case SevenZip:
		return listOptional(ctx, c, SevenZipAdapter{}, o.registry, log)
	case Rar:
		return listOptional(ctx, c, RarAdapter{}, o.registry, log)
	case PlainFile:
		return fileNode(path, ""), nil
	}
	panic("unexpected container kind: " + c.Kind.String())
}

func listOptional(ctx context.Context, c Container, adapter Adapter, registry Registry, log logrus.FieldLogger) (*census.Node, error) {
	if registry.Available(c.Kind) {
		root, err := adapter.List(ctx, c.Path)
		if !errors.Is(err, ErrCapabilityUnavailable) {
			return root, err
		}
		log.WithError(err).Info("decoder not compiled in")
	}
	hint := registry.Hint(c.Kind)
	if hint == "" {
		hint = capabilities.Hint(c.Kind)
	}
	return fileNode(c.Path, hint), nil
}

// fileNode counts a single file that is not looked into.
func fileNode(path, note string) *census.Node {
	node := census.NewNode(baseName(path))
	node.Counts.Add(census.ExtOf(path), 1)
	node.Note = note
	return node
}
