package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RosterFile represents the top-level YAML structure.
type RosterFile struct {
	Roster []MatchSpec `yaml:"roster"`
}

// MatchSpec represents a single matchup in the YAML file.
type MatchSpec struct {
	Opponent string `yaml:"opponent" json:"opponent"`
	Rounds   int    `yaml:"rounds,omitempty" json:"rounds,omitempty"`
	Seed     uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// ParseRoster parses roster YAML. Entries without an opponent are rejected.
func ParseRoster(data []byte) ([]MatchSpec, error) {
	var rf RosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse roster YAML: %w", err)
	}
	for i, spec := range rf.Roster {
		if spec.Opponent == "" {
			return nil, fmt.Errorf("roster entry %d: missing opponent", i+1)
		}
		if spec.Rounds < 0 {
			return nil, fmt.Errorf("roster entry %d: negative rounds %d", i+1, spec.Rounds)
		}
	}
	return rf.Roster, nil
}

// LoadRoster reads and parses a roster file.
func LoadRoster(path string) ([]MatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoster(data)
}
