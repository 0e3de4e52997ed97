/*
period.go - Acquisition period generation

PURPOSE:
  Produces the ordered sequence of acquisition periods for an employee,
  anchored to the hire date, including any configured historical override
  periods. Periods are never persisted: they are regenerated on every read,
  which is why identity is the structural (start, end) pair.

GENERATION RULES:
  1. With an override config: emit each override period verbatim, in the
     order given, then resume standard generation from
     RegularPeriodsStartFrom.
  2. Without: anchor standard generation to the hire date. No hire date
     means no periods at all.
  3. Standard periods are contiguous one-year windows
     [anchor, anchor+1y), [anchor+1y, anchor+2y), ... oldest-first.
  4. Generation stops one year past today, or after maxPeriods standard
     periods (safety bound for unbounded tenures).
  5. A future hire date still yields exactly one period, so the upcoming
     entitlement is visible before the start date.
*/
package leave

// DefaultMaxPeriods bounds standard period generation per employee.
const DefaultMaxPeriods = 10

// GeneratePeriods returns the ordered acquisition periods for an employee as
// of today. cfg may be nil; maxPeriods <= 0 falls back to DefaultMaxPeriods.
// The result is deterministic and oldest-first, and consecutive standard
// periods are contiguous: periods[i+1].Start == periods[i].End.
func GeneratePeriods(emp Employee, cfg *OverrideConfig, today Date, maxPeriods int) []AcquisitionPeriod {
	if maxPeriods <= 0 {
		maxPeriods = DefaultMaxPeriods
	}

	var periods []AcquisitionPeriod
	var anchor Date

	if cfg != nil {
		for _, op := range cfg.Periods {
			total := op.TotalDays
			periods = append(periods, AcquisitionPeriod{
				Start:         op.Start,
				End:           op.End,
				OverrideTotal: &total,
				Note:          op.Note,
				FullyConsumed: op.FullyConsumed,
			})
		}
		anchor = cfg.RegularPeriodsStartFrom
	} else {
		if emp.HireDate == nil {
			return nil
		}
		anchor = *emp.HireDate
	}

	horizon := today.AddYears(1)
	start := anchor
	emitted := 0

	for emitted < maxPeriods && !start.After(horizon) {
		end := start.AddYears(1)
		periods = append(periods, AcquisitionPeriod{Start: start, End: end})
		emitted++
		start = end
	}

	// A hire date beyond the horizon still gets its first period.
	if emitted == 0 && cfg == nil {
		periods = append(periods, AcquisitionPeriod{Start: anchor, End: anchor.AddYears(1)})
	}

	return periods
}

// FindPeriod locates the period structurally identified by (start, end) in a
// generated sequence. Returns nil when no period matches.
func FindPeriod(periods []AcquisitionPeriod, start, end Date) *AcquisitionPeriod {
	for i := range periods {
		if periods[i].Matches(start, end) {
			return &periods[i]
		}
	}
	return nil
}
