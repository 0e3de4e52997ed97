/*
lifecycle.go - Leave request state machine

PURPOSE:
  Drives a request through pending -> approved/rejected, plus edit and
  delete. Every transition validates first, then hands the mutated record
  to the RequestStore; consumed days are recomputed on every write path.

REQUEST FLOW:

  self-service create ──▶ pending ──▶ approved
                                 └──▶ rejected
  admin backfill      ──────────────▶ approved

  Approved and rejected are not terminal: both remain editable and
  deletable, which is what the admin correction workflow relies on.

APPROVAL:
  Approve does not re-check the balance; the balance was checked at
  creation. Two administrators approving overlapping requests against the
  same stale snapshot can over-consume a period until the next read - the
  store layer owns serializing conflicting writers.
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SERVICE - Lifecycle orchestration over the pure engine
// =============================================================================

// Service wires the pure accounting functions to the collaborator stores.
type Service struct {
	Employees EmployeeStore
	Requests  RequestStore
	Overrides OverrideStore

	// Injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewService creates a lifecycle service with real clock and ID generation.
func NewService(employees EmployeeStore, requests RequestStore, overrides OverrideStore) *Service {
	return &Service{
		Employees: employees,
		Requests:  requests,
		Overrides: overrides,
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// CreateInput carries the caller-supplied fields for a new request.
// ConsumedDays is deliberately absent: it is always derived.
type CreateInput struct {
	EmployeeID string
	StartDate  Date
	EndDate    Date
	SoldDays   int

	// Structural reference to the selected acquisition period.
	PeriodStart Date
	PeriodEnd   Date

	Notes string

	// AsApproved records the request directly as approved (administrator
	// backfill of historical leave). ApproverID identifies the recording
	// administrator.
	AsApproved bool
	ApproverID string
}

// EditInput carries the new field values for an edit. Edits are permitted
// from any state.
type EditInput struct {
	StartDate   Date
	EndDate     Date
	SoldDays    int
	PeriodStart Date
	PeriodEnd   Date
	Notes       string
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Create validates and persists a new leave request. Self-service requests
// start pending; admin backfill is recorded as approved with approver and
// timestamp set immediately.
func (s *Service) Create(ctx context.Context, in CreateInput) (*LeaveRequest, error) {
	emp, err := s.employee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	if in.SoldDays < 0 || in.SoldDays > 10 {
		return nil, ErrInvalidSoldDays
	}

	period, err := s.selectedPeriod(ctx, *emp, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}

	approved, err := s.Requests.ListApproved(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("load approved requests: %w", err)
	}

	req := LeaveRequest{
		ID:          s.NewID(),
		EmployeeID:  emp.ID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		SoldDays:    in.SoldDays,
		Status:      StatusPending,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Notes:       in.Notes,
		CreatedAt:   s.Now(),
	}

	if err := ValidateRequest(req, period, emp.Classification, approved); err != nil {
		return nil, err
	}

	req.ConsumedDays, err = CountDays(req.StartDate, req.EndDate, emp.Classification)
	if err != nil {
		return nil, err
	}

	if in.AsApproved {
		now := s.Now()
		req.Status = StatusApproved
		req.ApproverID = in.ApproverID
		req.ApprovedAt = &now
	}

	if err := s.Requests.SaveRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return &req, nil
}

// Approve transitions pending -> approved, recording approver and timestamp.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (*LeaveRequest, error) {
	req, err := s.request(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, &TransitionError{From: req.Status, To: StatusApproved}
	}

	now := s.Now()
	req.Status = StatusApproved
	req.ApproverID = approverID
	req.ApprovedAt = &now

	if err := s.Requests.SaveRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return req, nil
}

// Reject transitions pending -> rejected, recording the reason.
func (s *Service) Reject(ctx context.Context, requestID, reason string) (*LeaveRequest, error) {
	req, err := s.request(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, &TransitionError{From: req.Status, To: StatusRejected}
	}

	req.Status = StatusRejected
	req.RejectionReason = reason

	if err := s.Requests.SaveRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return req, nil
}

// Edit applies new field values to an existing request, recomputes its
// consumed days, and revalidates against the (possibly new) period with the
// request's own prior contribution excluded from the balance scan.
func (s *Service) Edit(ctx context.Context, requestID string, in EditInput) (*LeaveRequest, error) {
	req, err := s.request(ctx, requestID)
	if err != nil {
		return nil, err
	}

	emp, err := s.employee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if in.SoldDays < 0 || in.SoldDays > 10 {
		return nil, ErrInvalidSoldDays
	}

	period, err := s.selectedPeriod(ctx, *emp, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}

	approved, err := s.Requests.ListApproved(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("load approved requests: %w", err)
	}

	updated := *req
	updated.StartDate = in.StartDate
	updated.EndDate = in.EndDate
	updated.SoldDays = in.SoldDays
	updated.PeriodStart = in.PeriodStart
	updated.PeriodEnd = in.PeriodEnd
	updated.Notes = in.Notes

	if err := ValidateRequest(updated, period, emp.Classification, approved); err != nil {
		return nil, err
	}

	updated.ConsumedDays, err = CountDays(updated.StartDate, updated.EndDate, emp.Classification)
	if err != nil {
		return nil, err
	}

	if err := s.Requests.SaveRequest(ctx, updated); err != nil {
		return nil, fmt.Errorf("save request: %w", err)
	}
	return &updated, nil
}

// Delete removes a request outright. No balance re-check is needed: the
// consumption simply disappears from the next balance scan.
func (s *Service) Delete(ctx context.Context, requestID string) error {
	req, err := s.request(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.Requests.DeleteRequest(ctx, req.ID); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// PeriodsFor returns the employee's generated periods with computed balances,
// oldest first.
func (s *Service) PeriodsFor(ctx context.Context, employeeID string, today Date) ([]PeriodBalance, error) {
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.Overrides.GetOverrideConfig(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("load override config: %w", err)
	}

	approved, err := s.Requests.ListApproved(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("load approved requests: %w", err)
	}

	periods := GeneratePeriods(*emp, cfg, today, DefaultMaxPeriods)
	result := make([]PeriodBalance, len(periods))
	for i, p := range periods {
		result[i] = PeriodBalance{
			Period:  p,
			Balance: ComputeBalance(p, approved, emp.Classification, ""),
		}
	}
	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Service) employee(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.Employees.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) request(ctx context.Context, id string) (*LeaveRequest, error) {
	req, err := s.Requests.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// selectedPeriod resolves the structural period reference against the
// employee's generated periods. A zero reference or one that matches no
// generated period yields nil, which the validator turns into
// ErrMissingAcquisitionPeriod.
func (s *Service) selectedPeriod(ctx context.Context, emp Employee, start, end Date) (*AcquisitionPeriod, error) {
	cfg, err := s.Overrides.GetOverrideConfig(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("load override config: %w", err)
	}
	periods := GeneratePeriods(emp, cfg, s.today(), DefaultMaxPeriods)
	return FindPeriod(periods, start, end), nil
}

func (s *Service) today() Date {
	now := s.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}
