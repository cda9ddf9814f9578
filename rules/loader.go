package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Loader reads scoring tables from rules.yaml
 * Values present in the file override the compiled-in defaults,
 * so a partial file (say, only the tier thresholds) is valid
 */

// Loader holds the active rule set.
type Loader struct {
	rules Rules
}

// NewLoader creates a loader primed with the default tables.
func NewLoader() *Loader {
	return &Loader{rules: Defaults()}
}

// Load reads and parses a rules YAML file over the defaults.
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading rules file: %w", err)
	}

	rules := Defaults()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return fmt.Errorf("parsing rules YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return fmt.Errorf("validating rules: %w", err)
	}

	l.rules = rules
	return nil
}

// Rules returns the active rule set.
func (l *Loader) Rules() Rules {
	return l.rules
}
