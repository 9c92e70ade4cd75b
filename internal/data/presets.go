package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nzeb-model/internal/config"

	"github.com/rs/zerolog/log"
)

var ErrPresetNotFound = errors.New("battery preset not found")

// Preset is a battery preset file. ID is the file name without ".yaml"
// (e.g. "1_home_10kwh").
type Preset struct {
	ID      string
	File    string
	Battery config.BatteryConfig
}

// DisplayName falls back to the id when the file has no name.
func (p Preset) DisplayName() string {
	if p.Battery.Name != "" {
		return p.Battery.Name
	}
	return p.ID
}

// ListPresets reads every *.yaml preset in dir, ordered by id.
// Files that fail to parse are skipped.
func ListPresets(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	presets := make([]Preset, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		batt, err := config.LoadBatteryFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping battery preset")
			continue
		}
		presets = append(presets, Preset{
			ID:      strings.TrimSuffix(entry.Name(), ".yaml"),
			File:    path,
			Battery: batt,
		})
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, nil
}

// LoadPreset reads a single preset by id from dir.
func LoadPreset(dir, id string) (Preset, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
	}
	path := filepath.Join(dir, id+".yaml")
	batt, err := config.LoadBatteryFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
		}
		return Preset{}, err
	}
	return Preset{ID: id, File: path, Battery: batt}, nil
}
