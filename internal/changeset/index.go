// Package changeset computes and memoizes the set of files each commit changed.
package changeset

import (
	"context"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/masmgr/smartsquash-go/internal/git"
)

// DefaultCacheSize bounds the memo. Evicted entries are simply recomputed.
const DefaultCacheSize = 4096

// PathSource answers per-commit changed path queries.
type PathSource interface {
	WorkDir() string
	ChangedPaths(ctx context.Context, sha string) ([]string, error)
}

// cacheKey namespaces commit identifiers by working directory so a shared
// cache can never mix up two repositories.
type cacheKey struct {
	workDir string
	sha     string
}

// Cache memoizes footprints for the lifetime of one invocation. History is
// static during analysis, so entries are never invalidated, only purged.
type Cache struct {
	entries *lru.Cache[cacheKey, FileSet]
}

// NewCache creates a cache holding up to size footprints.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, FileSet](size)
	if err != nil {
		return nil, errors.Wrap(err, "create change set cache")
	}
	return &Cache{entries: entries}, nil
}

// Len returns the number of cached footprints.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Reset drops every cached footprint.
func (c *Cache) Reset() {
	c.entries.Purge()
}

// Index resolves commit footprints, querying the source at most once per
// commit while the entry stays cached.
type Index struct {
	source PathSource
	cache  *Cache
	logger *zap.Logger
}

// Option configures an Index.
type Option func(*indexOptions)

type indexOptions struct {
	cacheSize int
	cache     *Cache
	logger    *zap.Logger
}

// WithCacheSize sets the capacity of the index's own cache.
func WithCacheSize(size int) Option {
	return func(o *indexOptions) {
		o.cacheSize = size
	}
}

// WithCache injects a cache, possibly shared with other indexes.
func WithCache(cache *Cache) Option {
	return func(o *indexOptions) {
		o.cache = cache
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *indexOptions) {
		o.logger = logger
	}
}

// NewIndex creates an index backed by source.
func NewIndex(source PathSource, opts ...Option) (*Index, error) {
	o := indexOptions{cacheSize: DefaultCacheSize, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cache := o.cache
	if cache == nil {
		var err error
		if cache, err = NewCache(o.cacheSize); err != nil {
			return nil, err
		}
	}
	return &Index{source: source, cache: cache, logger: o.logger}, nil
}

// ChangedFiles returns the footprint of a single commit.
func (x *Index) ChangedFiles(ctx context.Context, sha string) (FileSet, error) {
	key := cacheKey{workDir: x.source.WorkDir(), sha: sha}
	if files, ok := x.cache.entries.Get(key); ok {
		return files, nil
	}

	paths, err := x.source.ChangedPaths(ctx, sha)
	if err != nil {
		return nil, errors.Wrapf(err, "changed files of %s", git.ShortSHA(sha))
	}
	files := NewFileSet(paths...)
	x.cache.entries.Add(key, files)
	x.logger.Debug("indexed commit",
		zap.String("sha", git.ShortSHA(sha)),
		zap.Int("files", files.Len()))
	return files, nil
}

// IndexAll collects the footprints of commits, preserving their order.
func (x *Index) IndexAll(ctx context.Context, commits []git.Commit) (*Footprints, error) {
	fp := NewFootprints()
	for _, c := range commits {
		files, err := x.ChangedFiles(ctx, c.SHA)
		if err != nil {
			return nil, err
		}
		fp.Add(c.SHA, files)
	}
	return fp, nil
}

// Reset drops every cached footprint.
func (x *Index) Reset() {
	x.cache.Reset()
}
