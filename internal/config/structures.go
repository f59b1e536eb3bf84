package config

import (
	"fmt"
	"os"
	"pokerclock/internal/model"

	"gopkg.in/yaml.v3"
)

type structureFile struct {
	Structures []model.BlindStructure `yaml:"structures"`
}

// LoadStructures reads blind structures from a YAML file of the form
//
//	structures:
//	  - title: Turbo
//	    levels:
//	      - {minutes: 10, small_blind: 25, big_blind: 50}
func LoadStructures(path string) ([]model.BlindStructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStructures(data)
}

func ParseStructures(data []byte) ([]model.BlindStructure, error) {
	var f structureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse structures: %w", err)
	}
	for i, s := range f.Structures {
		if err := ValidateStructure(&s); err != nil {
			return nil, fmt.Errorf("structure %d (%q): %w", i+1, s.Title, err)
		}
	}
	return f.Structures, nil
}

// ValidateStructure checks that s can be turned into a game.
func ValidateStructure(s *model.BlindStructure) error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(s.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}
	for i, l := range s.Levels {
		if l.Duration() <= 0 {
			return fmt.Errorf("level %d: minutes must be positive", i+1)
		}
		if l.Minutes > model.MaxLevelMinutes {
			return fmt.Errorf("level %d: minutes must not exceed %d", i+1, model.MaxLevelMinutes)
		}
		if l.SmallBlind <= 0 {
			return fmt.Errorf("level %d: small blind must be positive", i+1)
		}
		if l.BigBlind < l.SmallBlind {
			return fmt.Errorf("level %d: big blind must not be below small blind", i+1)
		}
	}
	return nil
}
