package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// settingsFile is the per-project configuration written by "loom init".
const settingsFile = "loom.json"

// Settings is the persisted project configuration. It records the choices
// made at init time so later installs land in the same place.
type Settings struct {
	Styling       string `json:"styling"`
	ComponentPath string `json:"componentPath"`
	Registry      string `json:"registry,omitempty"`
}

// loadSettings searches dir and its parents for a loom.json file. It returns
// the parsed settings and the directory containing the file. A missing file
// returns (nil, "", nil); only read or parse failures are errors.
func loadSettings(dir string) (*Settings, string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}

	for {
		path := filepath.Join(current, settingsFile)
		data, err := os.ReadFile(path)
		if err == nil {
			var s Settings
			if err := json.Unmarshal(data, &s); err != nil {
				return nil, "", fmt.Errorf("parse %s: %w", path, err)
			}
			return &s, current, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, "", nil
		}
		current = parent
	}
}

// save writes the settings as loom.json into root.
func (s *Settings) save(root string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(root, settingsFile), data, 0644)
}
