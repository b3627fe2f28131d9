// Package scenario loads scripted sessions: an ordered list of console
// commands with optional expectations on their output.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted session run against a fresh network.
type Scenario struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

// Step runs one console command. Expect, when set, must appear in the
// command output. ExpectError flips the step into expecting a failure, and
// Expect is then matched against the error text.
type Step struct {
	Run         string `json:"run" yaml:"run"`
	Expect      string `json:"expect,omitempty" yaml:"expect,omitempty"`
	ExpectError bool   `json:"expect_error,omitempty" yaml:"expect_error,omitempty"`
}

// ValidationResult represents the outcome of a validation pass.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// Load reads a scenario from a .json, .yaml or .yml file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON scenario: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML scenario: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format: %s (use .json or .yaml)", ext)
	}

	return &sc, nil
}

// Validate checks the scenario for structural problems. known reports
// whether a command name exists; pass nil to skip that check.
func Validate(sc Scenario, known func(name string) bool) ValidationResult {
	res := ValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if sc.Name == "" {
		res.Warnings = append(res.Warnings, "Scenario has no name")
	}
	if len(sc.Steps) == 0 {
		res.Valid = false
		res.Errors = append(res.Errors, "Scenario has no steps")
	}

	for i, step := range sc.Steps {
		fields := strings.Fields(step.Run)
		if len(fields) == 0 {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("Step %d has no command", i+1))
			continue
		}
		if known != nil && !known(fields[0]) {
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("Step %d: unknown command %q", i+1, fields[0]))
		}
	}

	return res
}
