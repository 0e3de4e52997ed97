/*
handlers.go - HTTP API handlers for the leave entitlement engine

PURPOSE:
  Exposes the accounting engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the lifecycle service.

ENDPOINTS:
  Employees:
    GET    /api/employees                 List all employees
    POST   /api/employees                 Create employee
    GET    /api/employees/{id}            Get employee details
    GET    /api/employees/{id}/periods    Acquisition periods with balances
    GET    /api/employees/{id}/requests   Request history
    POST   /api/employees/{id}/requests   Submit leave request
    GET    /api/employees/{id}/overrides  Override config
    PUT    /api/employees/{id}/overrides  Replace override config

  Requests:
    POST   /api/requests/{id}/approve     Approve pending request
    POST   /api/requests/{id}/reject      Reject pending request
    PUT    /api/requests/{id}            Edit request (any state)
    DELETE /api/requests/{id}            Hard delete
    GET    /api/requests/{id}/sold-value Sold-days compensation value

ERROR HANDLING:
  - 400: malformed JSON, unparseable dates, bad query params
  - 404: unknown employee/request
  - 409: illegal status transition
  - 422: business validation (date range, missing/exhausted period,
         insufficient balance - response carries the available amount)
  - 500: store failures

SECURITY NOTE:
  No authentication middleware. Role gating lives in the portal gateway in
  front of this service.
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lexgate/leave-engine/leave"
	"github.com/lexgate/leave-engine/payout"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service   *leave.Service
	Employees leave.EmployeeStore
	Requests  leave.RequestStore
	Overrides leave.OverrideStore
}

// NewHandler creates a handler around a lifecycle service, reusing its
// stores for the plain read endpoints.
func NewHandler(svc *leave.Service) *Handler {
	return &Handler{
		Service:   svc,
		Employees: svc.Employees,
		Requests:  svc.Requests,
		Overrides: svc.Overrides,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = employeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Employees.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, employeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	classification := leave.Classification(req.Classification)
	if !classification.Valid() {
		writeError(w, http.StatusBadRequest,
			"classification must be consecutive_day or business_day", nil)
		return
	}

	emp := leave.Employee{
		ID:             req.ID,
		Name:           req.Name,
		Email:          req.Email,
		Classification: classification,
	}
	if req.HireDate != "" {
		hireDate, err := leave.ParseDate(req.HireDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
			return
		}
		emp.HireDate = &hireDate
	}

	if err := h.Employees.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeDTO(emp))
}

// ListPeriods returns the employee's acquisition periods with computed
// balances, oldest first. Periods are regenerated on every call.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	balances, err := h.Service.PeriodsFor(r.Context(), id, leave.Today())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]PeriodBalanceDTO, len(balances))
	for i, pb := range balances {
		dtos[i] = periodBalanceDTO(pb)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListRequests returns the employee's request history, oldest first.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	requests, err := h.Requests.ListRequests(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = requestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitRequest creates a leave request for the employee.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var body SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := leave.CreateInput{
		EmployeeID: employeeID,
		SoldDays:   body.SoldDays,
		Notes:      body.Notes,
		AsApproved: body.AsApproved,
		ApproverID: body.ApproverID,
	}
	var err error
	if in.StartDate, err = leave.ParseDate(body.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	if in.EndDate, err = leave.ParseDate(body.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if in.PeriodStart, in.PeriodEnd, err = parsePeriodRef(body.PeriodStart, body.PeriodEnd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period reference dates", err)
		return
	}

	req, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, requestDTO(*req))
}

// ApproveRequest transitions a pending request to approved.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body ApproveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, err := h.Service.Approve(r.Context(), id, body.ApproverID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDTO(*req))
}

// RejectRequest transitions a pending request to rejected.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body RejectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, err := h.Service.Reject(r.Context(), id, body.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDTO(*req))
}

// EditRequest applies new field values to a request in any state.
func (h *Handler) EditRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body EditRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := leave.EditInput{
		SoldDays: body.SoldDays,
		Notes:    body.Notes,
	}
	var err error
	if in.StartDate, err = leave.ParseDate(body.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	if in.EndDate, err = leave.ParseDate(body.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if in.PeriodStart, in.PeriodEnd, err = parsePeriodRef(body.PeriodStart, body.PeriodEnd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period reference dates", err)
		return
	}

	req, err := h.Service.Edit(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requestDTO(*req))
}

// DeleteRequest removes a request outright.
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SoldValue returns the compensation value of a request's sold-back days.
// The monthly salary is supplied by the caller (salary data lives in the
// finance system, not here).
func (h *Handler) SoldValue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	salary, err := decimal.NewFromString(r.URL.Query().Get("monthly_salary"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "monthly_salary query parameter required", err)
		return
	}

	req, err := h.Requests.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}

	emp, err := h.Employees.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	rate, err := payout.DailyRate(salary, emp.Classification)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid salary", err)
		return
	}
	value, err := payout.SoldDaysValue(salary, req.SoldDays, emp.Classification)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SoldValueDTO{
		RequestID: req.ID,
		SoldDays:  req.SoldDays,
		DailyRate: rate.Round(2).String(),
		Value:     value.String(),
	})
}

// =============================================================================
// OVERRIDE CONFIG HANDLERS
// =============================================================================

// GetOverrides returns the employee's override config, 404 when none exists.
func (h *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cfg, err := h.Overrides.GetOverrideConfig(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get override config", err)
		return
	}
	if cfg == nil {
		writeError(w, http.StatusNotFound, "No override config for employee", nil)
		return
	}
	writeJSON(w, http.StatusOK, overrideConfigDTO(*cfg))
}

// PutOverrides replaces the employee's override config.
func (h *Handler) PutOverrides(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body OverrideConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg := leave.OverrideConfig{EmployeeID: id}
	var err error
	if cfg.RegularPeriodsStartFrom, err = leave.ParseDate(body.RegularPeriodsStartFrom); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid regular_periods_start_from (use YYYY-MM-DD)", err)
		return
	}
	for _, p := range body.Periods {
		start, err := leave.ParseDate(p.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid override period start (use YYYY-MM-DD)", err)
			return
		}
		end, err := leave.ParseDate(p.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid override period end (use YYYY-MM-DD)", err)
			return
		}
		if end.Before(start) || p.TotalDays < 0 {
			writeError(w, http.StatusUnprocessableEntity, "Invalid override period", nil)
			return
		}
		cfg.Periods = append(cfg.Periods, leave.OverridePeriod{
			Start:         start,
			End:           end,
			TotalDays:     p.TotalDays,
			Note:          p.Note,
			FullyConsumed: p.FullyConsumed,
		})
	}

	if err := h.Overrides.SaveOverrideConfig(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save override config", err)
		return
	}
	writeJSON(w, http.StatusOK, overrideConfigDTO(cfg))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func parsePeriodRef(start, end string) (leave.Date, leave.Date, error) {
	// An absent period reference is a validation outcome, not a parse error:
	// the engine reports ErrMissingAcquisitionPeriod for the zero pair.
	if start == "" && end == "" {
		return leave.Date{}, leave.Date{}, nil
	}
	s, err := leave.ParseDate(start)
	if err != nil {
		return leave.Date{}, leave.Date{}, err
	}
	e, err := leave.ParseDate(end)
	if err != nil {
		return leave.Date{}, leave.Date{}, err
	}
	return s, e, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to HTTP statuses. Insufficient-balance
// rejections carry the available amount for the caller to present.
func writeDomainError(w http.ResponseWriter, err error) {
	var ibe *leave.InsufficientBalanceError
	switch {
	case errors.As(err, &ibe):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "Insufficient balance",
			Detail:    ibe.Error(),
			Available: &ibe.Available,
		})
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, leave.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Invalid status transition", err)
	case leave.IsValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, "Validation failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
