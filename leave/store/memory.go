// Package store provides an in-memory implementation of the leave
// persistence interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lexgate/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees map[string]leave.Employee
	requests  map[string]leave.LeaveRequest
	overrides map[string]leave.OverrideConfig
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[string]leave.Employee),
		requests:  make(map[string]leave.LeaveRequest),
		overrides: make(map[string]leave.OverrideConfig),
	}
}

// Compile-time checks against the collaborator interfaces.
var (
	_ leave.EmployeeStore = (*Memory)(nil)
	_ leave.RequestStore  = (*Memory)(nil)
	_ leave.OverrideStore = (*Memory)(nil)
)

// -----------------------------------------------------------------------------
// EmployeeStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveEmployee(_ context.Context, emp leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]leave.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// -----------------------------------------------------------------------------
// RequestStore
// -----------------------------------------------------------------------------

func (m *Memory) SaveRequest(_ context.Context, req leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) GetRequest(_ context.Context, id string) (*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &req, nil
}

func (m *Memory) ListRequests(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(employeeID, false), nil
}

func (m *Memory) ListApproved(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listLocked(employeeID, true), nil
}

func (m *Memory) listLocked(employeeID string, approvedOnly bool) []leave.LeaveRequest {
	var result []leave.LeaveRequest
	for _, req := range m.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if approvedOnly && req.Status != leave.StatusApproved {
			continue
		}
		result = append(result, req)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (m *Memory) DeleteRequest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

// -----------------------------------------------------------------------------
// OverrideStore
// -----------------------------------------------------------------------------

func (m *Memory) GetOverrideConfig(_ context.Context, employeeID string) (*leave.OverrideConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.overrides[employeeID]
	if !ok {
		return nil, nil
	}
	// Copy the slice so callers can't mutate stored state.
	out := cfg
	out.Periods = append([]leave.OverridePeriod(nil), cfg.Periods...)
	return &out, nil
}

func (m *Memory) SaveOverrideConfig(_ context.Context, cfg leave.OverrideConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg.Periods = append([]leave.OverridePeriod(nil), cfg.Periods...)
	m.overrides[cfg.EmployeeID] = cfg
	return nil
}
