// Package cache memoizes matrices on disk, so repeated runs over the same
// chain sizes skip rebuilding basis transforms and Hamiltonians.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"spinhalf/mat"
)

// Cache stores matrices as zstd compressed coordinate lists under a single
// directory. Writes go through a temporary file and a rename, so a crash
// never leaves a truncated entry behind.
type Cache struct {
	dir string
}

// New opens a cache rooted at dir, creating it if needed. An empty dir places
// the cache under the system temporary directory.
func New(dir string) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "spinhalf")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Cache{dir: dir}, nil
}

// Key builds a cache key from a matrix name and its parameters.
func Key(name string, args ...any) string {
	parts := []string{name}
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return strings.Join(parts, "_")
}

// Get loads the matrix stored under key. The second return value reports
// whether the key was present.
func (c *Cache) Get(key string) (*mat.COO, bool, error) {
	f, err := os.Open(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "")
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, false, errors.Wrap(err, "")
	}
	defer zr.Close()
	m, err := mat.DecodeCOO(zr)
	if err != nil {
		return nil, false, errors.Wrap(err, "")
	}
	return m, true, nil
}

// Put stores m under key, replacing any previous entry.
func (c *Cache) Put(key string, m *mat.COO) error {
	f, err := os.CreateTemp(c.dir, key+"-*")
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer os.Remove(f.Name())

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := m.Encode(zw); err != nil {
		return errors.Wrap(err, "")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.Rename(f.Name(), c.path(key)); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Memo returns the matrix under key, calling build and storing its result on
// a miss.
func (c *Cache) Memo(key string, build func() (*mat.COO, error)) (*mat.COO, error) {
	m, ok, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		return m, nil
	}

	m, err = build()
	if err != nil {
		return nil, err
	}
	if err := c.Put(key, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".coo.zst")
}
