// Package seed loads the activity catalogue installed at startup.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"schoolactivities/internal/domain"
)

//go:embed activities.yaml
var defaultCatalogue []byte

type catalogue struct {
	Activities []*domain.Activity `yaml:"activities"`
}

// Default returns the embedded catalogue.
func Default() ([]*domain.Activity, error) {
	return Parse(defaultCatalogue)
}

// Load reads the catalogue at path, or the embedded one when path is empty.
func Load(path string) ([]*domain.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue. Names must be present and unique.
func Parse(data []byte) ([]*domain.Activity, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(c.Activities) == 0 {
		return nil, errors.New("catalogue has no activities")
	}
	seen := make(map[string]struct{}, len(c.Activities))
	for i, a := range c.Activities {
		if a == nil || a.Name == "" {
			return nil, fmt.Errorf("activity %d: name is required", i)
		}
		if _, ok := seen[a.Name]; ok {
			return nil, fmt.Errorf("activity %q: duplicate name", a.Name)
		}
		seen[a.Name] = struct{}{}
		if a.Participants == nil {
			a.Participants = []string{}
		}
	}
	return c.Activities, nil
}
