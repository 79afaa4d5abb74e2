package walker

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"migration-coverage/internal/tree"
)

// Progress receives one call per finished directory.
type Progress interface {
	SetDirectory(dir string)
	Increment()
}

// Builder scans a directory into a tree.FileTree.
type Builder struct {
	fs         Filesystem
	classifier *Classifier
	excluder   *Excluder
	sem        *semaphore.Weighted
	workers    int
	logger     logrus.FieldLogger
	progress   Progress
}

type Option func(*Builder)

func WithFilesystem(fs Filesystem) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithWorkers bounds the number of filesystem calls in flight.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n <= 0 {
			n = 1
		}
		b.workers = n
		b.sem = semaphore.NewWeighted(int64(n))
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithProgress(p Progress) Option {
	return func(b *Builder) {
		b.progress = p
	}
}

func NewBuilder(classifier *Classifier, excluder *Excluder, opts ...Option) *Builder {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	workers := runtime.NumCPU() * 2
	b := &Builder{
		fs:         OSFilesystem{},
		classifier: classifier,
		excluder:   excluder,
		sem:        semaphore.NewWeighted(int64(workers)),
		workers:    workers,
		logger:     discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans root. Any unreadable entry fails the whole build; no partial
// tree is returned.
func (b *Builder) Build(ctx context.Context, root string) (*tree.FileTree, error) {
	return b.build(ctx, root, "")
}

func (b *Builder) build(ctx context.Context, dir, rel string) (*tree.FileTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.WithField("path", dir).Debug("Scanning directory")

	names, err := b.list(ctx, dir)
	if err != nil {
		return nil, err
	}

	kinds := make([]EntryKind, len(names))
	g, gctx := errgroup.WithContext(ctx)
	// one goroutine per worker, not per entry
	g.SetLimit(b.workers)
	for i, name := range names {
		g.Go(func() error {
			kind, err := b.stat(gctx, filepath.Join(dir, name))
			if err != nil {
				return err
			}
			kinds[i] = kind
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make(map[string]bool)
	var subdirs []string
	for i, name := range names {
		switch kinds[i] {
		case KindFile:
			if isTarget, ok := b.classifier.Classify(name); ok {
				files[name] = isTarget
			}
		case KindDirectory:
			if b.excluder.Excluded(name, path.Join(rel, name)) {
				b.logger.WithField("path", filepath.Join(dir, name)).Debug("Skipping excluded directory")
				continue
			}
			subdirs = append(subdirs, name)
		}
	}

	subtrees := make([]*tree.FileTree, len(subdirs))
	g, gctx = errgroup.WithContext(ctx)
	for i, name := range subdirs {
		g.Go(func() error {
			sub, err := b.build(gctx, filepath.Join(dir, name), path.Join(rel, name))
			if err != nil {
				return err
			}
			subtrees[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	directories := make(map[string]*tree.FileTree, len(subdirs))
	for i, name := range subdirs {
		directories[name] = subtrees[i]
	}

	if b.progress != nil {
		b.progress.SetDirectory(dir)
		b.progress.Increment()
	}

	return &tree.FileTree{
		Files:       files,
		Directories: directories,
	}, nil
}

func (b *Builder) list(ctx context.Context, dir string) ([]string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)

	names, err := b.fs.ListEntries(dir)
	if err != nil {
		b.logger.WithError(err).WithField("path", dir).Error("Failed to list directory")
		return nil, &AccessError{Op: "list", Path: dir, Err: err}
	}
	return names, nil
}

func (b *Builder) stat(ctx context.Context, entry string) (EntryKind, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return KindOther, err
	}
	defer b.sem.Release(1)

	kind, err := b.fs.StatEntry(entry)
	if err != nil {
		b.logger.WithError(err).WithField("path", entry).Error("Failed to stat entry")
		return KindOther, &AccessError{Op: "stat", Path: entry, Err: err}
	}
	return kind, nil
}
