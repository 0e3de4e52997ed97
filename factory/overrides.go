/*
Package factory provides YAML to Go override-config conversion.

PURPOSE:
  Converts YAML override-config documents into leave.OverrideConfig values.
  Historical exception periods are configuration data, not code: HR can
  maintain the override list in a version-controlled YAML file, and the
  factory validates it and produces the proper Go structs. This keeps the
  accounting engine free of institution-specific exceptions and makes the
  override list independently auditable and editable.

YAML SCHEMA:
  employees:
    - employee_id: "emp-legacy-007"
      regular_periods_start_from: "2024-10-01"
      periods:
        - start: "2024-01-15"
          end: "2024-09-30"
          total_days: 15
          note: "pre-merger accrual, settled"
          fully_consumed: true

VALIDATION:
  - employee_id must be set and unique within the document
  - regular_periods_start_from must parse as YYYY-MM-DD
  - each period needs start <= end and total_days >= 0

USAGE:
  configs, err := factory.LoadOverrides("overrides.yaml")
  for _, cfg := range configs {
      store.SaveOverrideConfig(ctx, cfg)
  }
*/
package factory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lexgate/leave-engine/leave"
)

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

type overridesDoc struct {
	Employees []overrideConfigYAML `yaml:"employees"`
}

type overrideConfigYAML struct {
	EmployeeID              string               `yaml:"employee_id"`
	RegularPeriodsStartFrom string               `yaml:"regular_periods_start_from"`
	Periods                 []overridePeriodYAML `yaml:"periods"`
}

type overridePeriodYAML struct {
	Start         string `yaml:"start"`
	End           string `yaml:"end"`
	TotalDays     int    `yaml:"total_days"`
	Note          string `yaml:"note,omitempty"`
	FullyConsumed bool   `yaml:"fully_consumed,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// LoadOverrides reads and parses an override-config YAML file.
func LoadOverrides(path string) ([]leave.OverrideConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("overrides: read file %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides parses an override-config YAML document.
func ParseOverrides(data []byte) ([]leave.OverrideConfig, error) {
	var doc overridesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("overrides: parse yaml: %w", err)
	}

	seen := make(map[string]bool)
	configs := make([]leave.OverrideConfig, 0, len(doc.Employees))

	for i, entry := range doc.Employees {
		if entry.EmployeeID == "" {
			return nil, fmt.Errorf("overrides: entry %d: employee_id must be set", i)
		}
		if seen[entry.EmployeeID] {
			return nil, fmt.Errorf("overrides: duplicate entry for employee %s", entry.EmployeeID)
		}
		seen[entry.EmployeeID] = true

		cfg, err := entry.toConfig()
		if err != nil {
			return nil, fmt.Errorf("overrides: employee %s: %w", entry.EmployeeID, err)
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

func (e overrideConfigYAML) toConfig() (leave.OverrideConfig, error) {
	regularStart, err := leave.ParseDate(e.RegularPeriodsStartFrom)
	if err != nil {
		return leave.OverrideConfig{}, fmt.Errorf("regular_periods_start_from: %w", err)
	}

	cfg := leave.OverrideConfig{
		EmployeeID:              e.EmployeeID,
		RegularPeriodsStartFrom: regularStart,
	}

	for i, p := range e.Periods {
		start, err := leave.ParseDate(p.Start)
		if err != nil {
			return leave.OverrideConfig{}, fmt.Errorf("period %d start: %w", i, err)
		}
		end, err := leave.ParseDate(p.End)
		if err != nil {
			return leave.OverrideConfig{}, fmt.Errorf("period %d end: %w", i, err)
		}
		if end.Before(start) {
			return leave.OverrideConfig{}, fmt.Errorf("period %d: end %s before start %s", i, end, start)
		}
		if p.TotalDays < 0 {
			return leave.OverrideConfig{}, fmt.Errorf("period %d: total_days must be >= 0", i)
		}

		cfg.Periods = append(cfg.Periods, leave.OverridePeriod{
			Start:         start,
			End:           end,
			TotalDays:     p.TotalDays,
			Note:          p.Note,
			FullyConsumed: p.FullyConsumed,
		})
	}

	return cfg, nil
}
