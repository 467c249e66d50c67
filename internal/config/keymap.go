package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keymap binds keyboard shortcuts to command ids.
type Keymap struct {
	Shortcuts map[string]string `yaml:"shortcuts"` // command id -> key
}

// LoadKeymap reads a YAML keymap such as:
//
//	shortcuts:
//	  fireFire: f
//	  viewMiniMap: ctrl+m
//
// An empty path yields an empty keymap.
func LoadKeymap(path string) (*Keymap, error) {
	km := &Keymap{Shortcuts: map[string]string{}}
	if path == "" {
		return km, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	if err := yaml.Unmarshal(data, km); err != nil {
		return nil, fmt.Errorf("failed to parse keymap %s: %w", path, err)
	}
	if km.Shortcuts == nil {
		km.Shortcuts = map[string]string{}
	}
	for id, key := range km.Shortcuts {
		if key == "" {
			return nil, fmt.Errorf("keymap %s: empty key for %s", path, id)
		}
	}
	return km, nil
}
