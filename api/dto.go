/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates travel as YYYY-MM-DD strings; timestamps as RFC 3339.
  Acquisition periods are referenced by their (period_start, period_end)
  date pair - there is no period id.
*/
package api

import (
	"time"

	"github.com/lexgate/leave-engine/leave"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Classification string `json:"classification"`
	HireDate       string `json:"hire_date,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
// hire_date may be empty: such employees get no acquisition periods.
type CreateEmployeeRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Classification string `json:"classification"`
	HireDate       string `json:"hire_date"`
}

func employeeDTO(emp leave.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:             emp.ID,
		Name:           emp.Name,
		Email:          emp.Email,
		Classification: string(emp.Classification),
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
	}
	if emp.HireDate != nil {
		dto.HireDate = emp.HireDate.String()
	}
	return dto
}

// =============================================================================
// PERIODS & BALANCES
// =============================================================================

// PeriodBalanceDTO is one acquisition period with its computed balance.
type PeriodBalanceDTO struct {
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	Note          string `json:"note,omitempty"`
	FullyConsumed bool   `json:"fully_consumed,omitempty"`
	Total         int    `json:"total"`
	Used          int    `json:"used"`
	Available     int    `json:"available"`
}

func periodBalanceDTO(pb leave.PeriodBalance) PeriodBalanceDTO {
	return PeriodBalanceDTO{
		PeriodStart:   pb.Period.Start.String(),
		PeriodEnd:     pb.Period.End.String(),
		Note:          pb.Period.Note,
		FullyConsumed: pb.Period.FullyConsumed,
		Total:         pb.Balance.Total,
		Used:          pb.Balance.Used,
		Available:     pb.Balance.Available,
	}
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// RequestDTO represents a leave request in API responses.
type RequestDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	ConsumedDays    int    `json:"consumed_days"`
	SoldDays        int    `json:"sold_days"`
	Status          string `json:"status"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	Notes           string `json:"notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
}

func requestDTO(req leave.LeaveRequest) RequestDTO {
	dto := RequestDTO{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		StartDate:       req.StartDate.String(),
		EndDate:         req.EndDate.String(),
		ConsumedDays:    req.ConsumedDays,
		SoldDays:        req.SoldDays,
		Status:          string(req.Status),
		PeriodStart:     req.PeriodStart.String(),
		PeriodEnd:       req.PeriodEnd.String(),
		Notes:           req.Notes,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		ApproverID:      req.ApproverID,
	}
	if req.ApprovedAt != nil {
		dto.ApprovedAt = req.ApprovedAt.Format(time.RFC3339)
	}
	return dto
}

// SubmitRequestDTO is the body for creating a leave request. Setting
// as_approved records the request directly as approved (admin backfill).
type SubmitRequestDTO struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	SoldDays    int    `json:"sold_days"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Notes       string `json:"notes"`
	AsApproved  bool   `json:"as_approved"`
	ApproverID  string `json:"approver_id"`
}

// EditRequestDTO is the body for editing an existing request.
type EditRequestDTO struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	SoldDays    int    `json:"sold_days"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Notes       string `json:"notes"`
}

// ApproveRequestDTO carries the approver for an approval.
type ApproveRequestDTO struct {
	ApproverID string `json:"approver_id"`
}

// RejectRequestDTO carries the rejection reason.
type RejectRequestDTO struct {
	Reason string `json:"reason"`
}

// =============================================================================
// OVERRIDE CONFIGS
// =============================================================================

// OverridePeriodDTO is one historical exception period.
type OverridePeriodDTO struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	TotalDays     int    `json:"total_days"`
	Note          string `json:"note,omitempty"`
	FullyConsumed bool   `json:"fully_consumed,omitempty"`
}

// OverrideConfigDTO is the per-employee override config.
type OverrideConfigDTO struct {
	EmployeeID              string              `json:"employee_id"`
	RegularPeriodsStartFrom string              `json:"regular_periods_start_from"`
	Periods                 []OverridePeriodDTO `json:"periods"`
}

func overrideConfigDTO(cfg leave.OverrideConfig) OverrideConfigDTO {
	dto := OverrideConfigDTO{
		EmployeeID:              cfg.EmployeeID,
		RegularPeriodsStartFrom: cfg.RegularPeriodsStartFrom.String(),
		Periods:                 make([]OverridePeriodDTO, len(cfg.Periods)),
	}
	for i, p := range cfg.Periods {
		dto.Periods[i] = OverridePeriodDTO{
			Start:         p.Start.String(),
			End:           p.End.String(),
			TotalDays:     p.TotalDays,
			Note:          p.Note,
			FullyConsumed: p.FullyConsumed,
		}
	}
	return dto
}

// =============================================================================
// PAYOUT
// =============================================================================

// SoldValueDTO is the compensation value of a request's sold-back days.
type SoldValueDTO struct {
	RequestID string `json:"request_id"`
	SoldDays  int    `json:"sold_days"`
	DailyRate string `json:"daily_rate"`
	Value     string `json:"value"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error envelope. Available is present only for
// insufficient-balance rejections so the caller can present the remaining
// days.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Available *int   `json:"available,omitempty"`
}
