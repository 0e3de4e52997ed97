/*
Package leave implements vacation entitlement accounting.

PURPOSE:
  Translates an employee's hire date and employment classification into a
  sequence of recurring acquisition periods, counts consumed days under two
  day-counting regimes, and computes a consistent used/available balance per
  period - including historical override periods that do not follow the
  standard anniversary rule.

KEY CONCEPTS IN THIS FILE (types.go):
  - Classification: consecutive-day vs business-day counting regime
  - Employee: id, classification, hire date (nil disables period generation)
  - AcquisitionPeriod: a one-year (or overridden) entitlement window
  - OverrideConfig: externally configured historical exception periods
  - LeaveRequest: a leave request moving through pending/approved/rejected
  - Balance: total/used/available for an (employee, period) pair

DESIGN PRINCIPLES:
  1. Purity: every calculation is a function over caller-supplied snapshots
  2. Structural identity: periods are identified by their (start, end) pair,
     never by a surrogate key - periods are regenerated, never persisted
  3. Recompute, don't cache: balances are always derived from the full
     approved-request snapshot, so there is no incremental drift to chase

SEE ALSO:
  - period.go: acquisition period generation
  - ledger.go: balance computation
  - validate.go: request validation
  - lifecycle.go: request state transitions
*/
package leave

import "time"

// =============================================================================
// CLASSIFICATION - The two day-counting regimes
// =============================================================================

// Classification determines how a leave span is counted against the
// entitlement: every calendar day, or weekdays only.
type Classification string

const (
	// ClassConsecutive counts every calendar day in a span (30 days/year default).
	ClassConsecutive Classification = "consecutive_day"

	// ClassBusiness counts Monday-Friday only (20 days/year default).
	ClassBusiness Classification = "business_day"
)

func (c Classification) Valid() bool {
	return c == ClassConsecutive || c == ClassBusiness
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is the subset of the personnel record the engine needs.
// A nil HireDate disables period generation for that employee.
type Employee struct {
	ID             string
	Name           string
	Email          string
	Classification Classification
	HireDate       *Date
	CreatedAt      time.Time
}

// =============================================================================
// ACQUISITION PERIOD - Identity is the (start, end) pair
// =============================================================================

// AcquisitionPeriod is one entitlement window. Standard periods satisfy
// End == Start + 1 year; override periods carry arbitrary bounds and an
// explicit total. Instances are ephemeral: regenerated on every read from
// the hire date and override config, never stored.
type AcquisitionPeriod struct {
	Start Date
	End   Date

	// OverrideTotal is set only for override periods and always wins over
	// the classification default.
	OverrideTotal *int

	Note string

	// FullyConsumed marks an override period whose entire entitlement is
	// considered used regardless of linked request records.
	FullyConsumed bool
}

// Matches reports whether the given date pair structurally identifies this
// period. This is the only notion of period identity in the system.
func (p AcquisitionPeriod) Matches(start, end Date) bool {
	return p.Start.Equal(start) && p.End.Equal(end)
}

func (p AcquisitionPeriod) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + ")"
}

// =============================================================================
// OVERRIDE CONFIG - Externalized historical exceptions
// =============================================================================

// OverridePeriod is one explicitly configured acquisition period replacing
// the standard anniversary-based generation for part of an employee's history.
type OverridePeriod struct {
	Start         Date
	End           Date
	TotalDays     int
	Note          string
	FullyConsumed bool
}

// OverrideConfig holds the ordered override periods for one employee plus
// the date from which standard yearly periods resume. Override configs are
// data, not code: they are loaded from configuration or the store.
type OverrideConfig struct {
	EmployeeID              string
	Periods                 []OverridePeriod
	RegularPeriodsStartFrom Date
}

// =============================================================================
// LEAVE REQUEST
// =============================================================================

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest is a request to consume leave days within one acquisition
// period. The period is referenced structurally via (PeriodStart, PeriodEnd);
// ConsumedDays is derived from the span and classification and is recomputed
// on every write path - a caller-supplied value is never trusted.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	StartDate Date
	EndDate   Date

	// ConsumedDays always equals CountDays(StartDate, EndDate, classification)
	// at save time. Persisted as a read optimization only.
	ConsumedDays int

	// SoldDays is leave sold back instead of taken, 0-10.
	SoldDays int

	Status RequestStatus

	// Structural reference to the acquisition period.
	PeriodStart Date
	PeriodEnd   Date

	Notes           string
	RejectionReason string

	CreatedAt  time.Time
	ApproverID string
	ApprovedAt *time.Time
}

// InPeriod reports whether the request is booked against the given period.
func (r LeaveRequest) InPeriod(p AcquisitionPeriod) bool {
	return p.Matches(r.PeriodStart, r.PeriodEnd)
}

// =============================================================================
// BALANCE - Computed, never persisted
// =============================================================================

// Balance is the used/available figure for one (employee, period) pair.
// Always recomputed from a full snapshot of approved requests.
type Balance struct {
	Total     int
	Used      int
	Available int
}

// PeriodBalance pairs a generated period with its computed balance, for
// callers that display the full entitlement history.
type PeriodBalance struct {
	Period  AcquisitionPeriod
	Balance Balance
}
