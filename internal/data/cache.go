package data

import (
	"fmt"
	"sync"
	"time"
)

// CacheEntry is one snapshot of the preset directory.
type CacheEntry struct {
	Presets   []Preset
	ExpiresAt time.Time
}

// PresetCache keeps the battery preset listing in memory so that requests
// naming a preset do not re-read the directory every time. A ttl <= 0 disables
// caching.
type PresetCache struct {
	mu    sync.RWMutex
	dir   string
	ttl   time.Duration
	entry *CacheEntry
	now   func() time.Time
}

func NewPresetCache(dir string, ttl time.Duration) *PresetCache {
	return &PresetCache{dir: dir, ttl: ttl, now: time.Now}
}

// Dir returns the preset directory.
func (c *PresetCache) Dir() string {
	return c.dir
}

// List returns all presets, reading the directory when the snapshot is stale.
func (c *PresetCache) List() ([]Preset, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry != nil && c.now().Before(entry.ExpiresAt) {
		return entry.Presets, nil
	}

	presets, err := ListPresets(c.dir)
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.mu.Lock()
		c.entry = &CacheEntry{Presets: presets, ExpiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return presets, nil
}

// Get returns the preset with the given id.
func (c *PresetCache) Get(id string) (Preset, error) {
	presets, err := c.List()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
}

// Clear drops the cached snapshot
func (c *PresetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
}
