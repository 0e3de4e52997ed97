/*
ledger.go - Balance computation

PURPOSE:
  Computes the used/available balance for one (employee, period) pair from
  a snapshot of approved requests. This is the central calculation that
  answers "how many days does this employee have left?"

KEY INSIGHT:
  Balance is ALWAYS recomputed from the full snapshot, never maintained
  incrementally. O(n) per query is a fine price for eliminating the whole
  class of increment/decrement drift bugs; request volume per employee is
  low. For the same reason results must never be memoized across mutations.
*/
package leave

// ComputeBalance computes the balance for a period from a snapshot of
// approved requests.
//
// A period flagged FullyConsumed short-circuits to used = total,
// available = 0 without scanning the snapshot. Otherwise used is the sum of
// ConsumedDays over every approved request booked against this period
// (structural match on the date pair), skipping excludeID.
//
// excludeID supports "what would the balance be if this request didn't
// exist" - used when editing a request in place. Pass "" when not editing.
//
// Available is clamped at zero: over-consumption (e.g. concurrent approvals
// racing past a stale snapshot) shows as available = 0, never negative.
func ComputeBalance(period AcquisitionPeriod, approved []LeaveRequest, c Classification, excludeID string) Balance {
	total := ResolveTotal(period, c)

	if period.FullyConsumed {
		return Balance{Total: total, Used: total, Available: 0}
	}

	used := 0
	for _, r := range approved {
		if r.Status != StatusApproved {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if !r.InPeriod(period) {
			continue
		}
		used += r.ConsumedDays
	}

	available := total - used
	if available < 0 {
		available = 0
	}

	return Balance{Total: total, Used: used, Available: available}
}
