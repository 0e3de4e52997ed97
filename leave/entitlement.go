package leave

// =============================================================================
// ENTITLEMENT RESOLVER - Total days granted for a period
// =============================================================================

// Classification defaults for one acquisition period.
const (
	DefaultConsecutiveDays = 30
	DefaultBusinessDays    = 20
)

// ResolveTotal returns the total entitlement days for a period. An explicit
// override total always wins; otherwise the classification default applies.
// Classification is assumed already validated upstream.
func ResolveTotal(period AcquisitionPeriod, c Classification) int {
	if period.OverrideTotal != nil {
		return *period.OverrideTotal
	}
	if c == ClassConsecutive {
		return DefaultConsecutiveDays
	}
	return DefaultBusinessDays
}
