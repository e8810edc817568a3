package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of an optional rules.yaml:
//
//	rules:
//	  glide-nested-query:
//	    enabled: false
//	  ts-no-any:
//	    severity: critical
type fileConfig struct {
	Rules map[string]struct {
		Enabled  *bool  `yaml:"enabled"`
		Severity string `yaml:"severity"`
	} `yaml:"rules"`
}

// LoadConfigFile applies a YAML rule-config document over the registry's
// existing per-rule defaults. It is additive to the programmatic
// EnableRule/DisableRule contract: a rule absent from the file keeps
// whatever config it already has. Unknown rule IDs in the file are ignored
// (the registry only holds config for rules it knows about).
func LoadConfigFile(registry *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading rule config file: %w", err)
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsing rule config file: %w", err)
	}

	for id, entry := range parsed.Rules {
		if _, ok := registry.GetConfig(id); !ok {
			continue
		}
		if entry.Enabled != nil {
			registry.setEnabled(id, *entry.Enabled)
		}
		if entry.Severity != "" {
			registry.SetSeverityOverride(id, Severity(entry.Severity))
		}
	}
	return nil
}
