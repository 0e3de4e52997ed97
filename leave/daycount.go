package leave

// =============================================================================
// DAY COUNTER - The single place day semantics are decided
// =============================================================================

// CountDays returns the inclusive day count of [start, end] under the given
// classification:
//
//   ClassConsecutive: every calendar day (end - start + 1)
//   ClassBusiness:    weekdays only, Saturdays and Sundays excluded
//
// Returns ErrInvalidRange when end precedes start. Every other component
// calls this instead of re-implementing date arithmetic.
func CountDays(start, end Date, c Classification) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}

	if c == ClassBusiness {
		count := 0
		for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
			if !d.IsWeekend() {
				count++
			}
		}
		return count, nil
	}

	return DaysBetween(start, end) + 1, nil
}
