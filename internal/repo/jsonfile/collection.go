// Package jsonfile persists each collection as a single JSON array on disk.
// Every operation loads the whole file, works in memory and, for mutations,
// rewrites the whole file. A per-collection mutex serializes the
// read-modify-write cycle so ids stay unique and writes are not lost within
// one process; concurrent writers from other processes remain
// last-writer-wins at file granularity.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
)

type collection[E any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[E any](dir, name string) *collection[E] {
	return &collection[E]{
		path: filepath.Join(dir, name+".json"),
	}
}

// load reads the whole collection. An absent or unparseable file is an empty
// collection, never an error.
func (c *collection[E]) load() []E {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var items []E
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}

func (c *collection[E]) save(items []E) error {
	if items == nil {
		items = []E{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "encode " + c.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return &models.StorageError{Op: "mkdir " + filepath.Dir(c.path), Err: err}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return &models.StorageError{Op: "write " + c.path, Err: err}
	}
	return nil
}

// update runs fn over the loaded collection under the collection lock and
// rewrites the file with whatever fn returns.
func (c *collection[E]) update(fn func(items []E) ([]E, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := fn(c.load())
	if err != nil {
		return err
	}
	return c.save(items)
}

// nextID assigns 1 + the maximum existing numeric id, or 1 for an empty
// collection. Ids that do not parse as integers are ignored.
func nextID[E any](items []E, id func(E) string) string {
	maxID := int64(0)
	for _, item := range items {
		n, err := strconv.ParseInt(id(item), 10, 64)
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("%d", maxID+1)
}
