package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

// LoadRosterRules reads lineup rules from a YAML file. An empty path returns
// the default rules. Keys missing from the file keep their default values.
func LoadRosterRules(path string, enforcePositionMatch bool) (roster.Rules, error) {
	rules := roster.DefaultRules()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return roster.Rules{}, fmt.Errorf("read roster rules %s: %w", path, err)
		}
		rules, err = ParseRosterRules(raw)
		if err != nil {
			return roster.Rules{}, fmt.Errorf("parse roster rules %s: %w", path, err)
		}
	}

	if enforcePositionMatch {
		rules.EnforcePositionMatch = true
	}
	return rules, nil
}

func ParseRosterRules(raw []byte) (roster.Rules, error) {
	rules := roster.DefaultRules()

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return roster.Rules{}, err
	}

	if err := validateRosterRules(rules); err != nil {
		return roster.Rules{}, err
	}
	return rules, nil
}

func validateRosterRules(rules roster.Rules) error {
	if rules.StarterCount < 1 {
		return fmt.Errorf("starter_count must be >= 1")
	}
	if rules.Goalkeepers < 0 || rules.Goalkeepers > rules.StarterCount {
		return fmt.Errorf("goalkeepers must be between 0 and starter_count")
	}

	for pos, n := range rules.MinByPosition {
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("min_by_position: unknown position %q", pos)
		}
		if n < 0 {
			return fmt.Errorf("min_by_position %s must be >= 0", pos)
		}
	}
	for pos, n := range rules.MaxByPosition {
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("max_by_position: unknown position %q", pos)
		}
		if minRequired, ok := rules.MinByPosition[pos]; ok && n < minRequired {
			return fmt.Errorf("max_by_position %s is below min_by_position", pos)
		}
	}
	return nil
}
