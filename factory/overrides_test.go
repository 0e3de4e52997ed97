package factory_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgate/leave-engine/factory"
	"github.com/lexgate/leave-engine/leave"
)

const validDoc = `
employees:
  - employee_id: "emp-legacy-007"
    regular_periods_start_from: "2024-10-01"
    periods:
      - start: "2024-01-15"
        end: "2024-09-30"
        total_days: 15
        note: "pre-merger accrual, settled"
        fully_consumed: true
  - employee_id: "emp-legacy-012"
    regular_periods_start_from: "2023-07-01"
    periods: []
`

func TestParseOverrides_Valid(t *testing.T) {
	configs, err := factory.ParseOverrides([]byte(validDoc))
	require.NoError(t, err)
	require.Len(t, configs, 2)

	cfg := configs[0]
	assert.Equal(t, "emp-legacy-007", cfg.EmployeeID)
	assert.True(t, cfg.RegularPeriodsStartFrom.Equal(leave.NewDate(2024, time.October, 1)))
	require.Len(t, cfg.Periods, 1)

	p := cfg.Periods[0]
	assert.True(t, p.Start.Equal(leave.NewDate(2024, time.January, 15)))
	assert.True(t, p.End.Equal(leave.NewDate(2024, time.September, 30)))
	assert.Equal(t, 15, p.TotalDays)
	assert.Equal(t, "pre-merger accrual, settled", p.Note)
	assert.True(t, p.FullyConsumed)

	assert.Empty(t, configs[1].Periods)
}

func TestParseOverrides_FeedsPeriodGeneration(t *testing.T) {
	// The parsed config plugs straight into period generation.
	configs, err := factory.ParseOverrides([]byte(validDoc))
	require.NoError(t, err)

	hire := leave.NewDate(2024, time.January, 15)
	emp := leave.Employee{ID: "emp-legacy-007", Classification: leave.ClassBusiness, HireDate: &hire}

	periods := leave.GeneratePeriods(emp, &configs[0], leave.NewDate(2025, time.June, 1), 0)
	require.NotEmpty(t, periods)
	assert.Equal(t, 15, leave.ResolveTotal(periods[0], emp.Classification))
	assert.True(t, periods[1].Start.Equal(leave.NewDate(2024, time.October, 1)))
}

func TestParseOverrides_Rejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing employee_id",
			doc: `
employees:
  - regular_periods_start_from: "2024-10-01"
    periods: []
`,
		},
		{
			name: "duplicate employee_id",
			doc: `
employees:
  - employee_id: "emp-1"
    regular_periods_start_from: "2024-10-01"
  - employee_id: "emp-1"
    regular_periods_start_from: "2024-10-01"
`,
		},
		{
			name: "unparseable date",
			doc: `
employees:
  - employee_id: "emp-1"
    regular_periods_start_from: "01/10/2024"
`,
		},
		{
			name: "period end before start",
			doc: `
employees:
  - employee_id: "emp-1"
    regular_periods_start_from: "2024-10-01"
    periods:
      - start: "2024-09-30"
        end: "2024-01-15"
        total_days: 15
`,
		},
		{
			name: "negative total_days",
			doc: `
employees:
  - employee_id: "emp-1"
    regular_periods_start_from: "2024-10-01"
    periods:
      - start: "2024-01-15"
        end: "2024-09-30"
        total_days: -1
`,
		},
		{
			name: "not yaml",
			doc:  "employees: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.ParseOverrides([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadOverrides_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o600))

	configs, err := factory.LoadOverrides(path)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := factory.LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
