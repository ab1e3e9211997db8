// Package settings persists application settings between runs: the
// continuous update folder, the mid-step flush interval, the last used
// station and the last entered session metadata for quick re-entry.
package settings

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// MinUpdateInterval is the floor for the mid-step flush interval.
	MinUpdateInterval = 5

	defaultUpdateInterval = 10
	settingsVersion       = "1.0"
)

// Settings is the persisted application configuration.
type Settings struct {
	UpdateFolder        string            `json:"update_folder"`
	UpdateInterval      int               `json:"update_interval"`
	LastStation         string            `json:"last_station"`
	LastSessionMetadata map[string]string `json:"last_session_metadata"`
	Version             string            `json:"version"`

	path string
}

// DefaultDir returns the per-user prosed directory (~/.prosed).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prosed"), nil
}

// DefaultPath returns the default settings file location.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// Load reads settings from path, creating defaults when the file is
// missing or unreadable. The update folder defaults to a "updates"
// directory next to the settings file.
func Load(path string) *Settings {
	s := defaults(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", path).Msg("failed to read settings, using defaults")
		}
		s.Save()
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		log.Error().Err(err).Str("path", path).Msg("corrupt settings file, using defaults")
		s = defaults(path)
		s.Save()
		return s
	}
	if s.UpdateInterval < MinUpdateInterval {
		s.UpdateInterval = defaultUpdateInterval
	}
	if s.UpdateFolder == "" {
		s.UpdateFolder = defaults(path).UpdateFolder
	}
	s.path = path
	return s
}

func defaults(path string) *Settings {
	return &Settings{
		UpdateFolder:        filepath.Join(filepath.Dir(path), "updates"),
		UpdateInterval:      defaultUpdateInterval,
		LastSessionMetadata: map[string]string{},
		Version:             settingsVersion,
		path:                path,
	}
}

// Save writes the settings to disk. Failures are logged, not fatal.
func (s *Settings) Save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		log.Error().Err(err).Msg("failed to create settings directory")
		return
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal settings")
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("failed to save settings")
	}
}

// SetUpdateFolder persists a new update folder.
func (s *Settings) SetUpdateFolder(folder string) {
	s.UpdateFolder = folder
	s.Save()
	log.Info().Str("folder", folder).Msg("update folder saved")
}

// SetUpdateInterval persists a new flush interval, clamped to the floor.
func (s *Settings) SetUpdateInterval(seconds int) {
	if seconds < MinUpdateInterval {
		seconds = MinUpdateInterval
	}
	s.UpdateInterval = seconds
	s.Save()
}

// SetLastStation remembers the station entered at session setup.
func (s *Settings) SetLastStation(station string) {
	s.LastStation = station
	s.Save()
}

// SetLastSessionMetadata remembers setup values for pre-population.
func (s *Settings) SetLastSessionMetadata(values map[string]string) {
	s.LastSessionMetadata = values
	s.Save()
}
