package artwork

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache remembers resolved artwork paths between runs. It is owned by the
// presentation layer; nothing in the card or deck packages reads it.
type Cache struct {
	mu      sync.Mutex
	file    string
	entries map[string]string
	dirty   bool
}

// NewCache returns an empty cache that saves to file. An empty file name
// keeps the cache in memory only.
func NewCache(file string) *Cache {
	return &Cache{file: file, entries: make(map[string]string)}
}

// OpenCache loads a cache saved by Save. A missing file gives an empty cache.
func OpenCache(file string) (*Cache, error) {
	c := NewCache(file)
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read artwork cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string]string)
		return c, fmt.Errorf("decode artwork cache: %w", err)
	}
	if c.entries == nil {
		c.entries = make(map[string]string)
	}
	return c, nil
}

// Get returns the cached path for key
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	path, ok := c.entries[key]
	return path, ok
}

// Put records a resolved path
func (c *Cache) Put(key, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] == path {
		return
	}
	c.entries[key] = path
	c.dirty = true
}

// Invalidate forgets one entry
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.dirty = true
	}
}

// Clear forgets every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) > 0 {
		c.entries = make(map[string]string)
		c.dirty = true
	}
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Save writes the cache to its file when it has changed
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty || c.file == "" {
		return nil
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artwork cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.file), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(c.file, data, 0644); err != nil {
		return fmt.Errorf("write artwork cache: %w", err)
	}
	c.dirty = false
	return nil
}
