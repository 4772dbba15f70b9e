// Package localcache persists the full task and scratchpad collections as
// device-local JSON blobs. Each blob is overwritten wholesale on every
// mutation (last writer wins, no merge) so the cache always holds the last
// known-good snapshot.
package localcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"taskflow/internal/service"
)

const (
	tasksFile      = "tasks.json"
	scratchpadFile = "scratchpad.json"
)

// Cache is the device-local store rooted at one directory.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir. The directory is created lazily on
// first write.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Tasks loads the cached task collection. A missing file yields an empty
// collection, not an error.
func (c *Cache) Tasks() ([]service.Task, error) {
	var tasks []service.Task
	if err := c.read(tasksFile, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks overwrites the cached task collection.
func (c *Cache) SaveTasks(tasks []service.Task) error {
	return c.write(tasksFile, tasks)
}

// Scratchpad loads the cached scratchpad collection.
func (c *Cache) Scratchpad() ([]service.ScratchpadItem, error) {
	var items []service.ScratchpadItem
	if err := c.read(scratchpadFile, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveScratchpad overwrites the cached scratchpad collection.
func (c *Cache) SaveScratchpad(items []service.ScratchpadItem) error {
	return c.write(scratchpadFile, items)
}

// Clear removes both cached collections.
func (c *Cache) Clear() error {
	for _, name := range []string{tasksFile, scratchpadFile} {
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (c *Cache) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt cache file %s: %w", name, err)
	}
	return nil
}

func (c *Cache) write(name string, v any) error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(filepath.Join(c.dir, name), data, 0600)
}

// atomicWriteFile writes via a temp file and rename so a crash mid-write
// never leaves a truncated blob.
func atomicWriteFile(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
