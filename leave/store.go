/*
store.go - Persistence interfaces for the engine's collaborators

PURPOSE:
  Defines the boundary between the pure accounting engine and whatever
  stores the records. The engine performs no I/O of its own: the lifecycle
  service reads snapshots through these interfaces and hands mutated records
  back for persistence.

CONSISTENCY CONTRACT:
  The engine assumes it is handed a consistent snapshot and a reachable
  store. Two concurrent callers can each read a stale snapshot, both pass
  validation, and both write - serializing conflicting writers (transactional
  constraint, optimistic version check) is the store's responsibility, not
  the engine's.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - leave/store:  in-memory store for tests and dev
*/
package leave

import "context"

// EmployeeStore persists employee records.
type EmployeeStore interface {
	SaveEmployee(ctx context.Context, emp Employee) error

	// GetEmployee returns nil (no error) when the employee doesn't exist.
	GetEmployee(ctx context.Context, id string) (*Employee, error)

	ListEmployees(ctx context.Context) ([]Employee, error)
}

// RequestStore persists leave requests. Save is an upsert: the lifecycle
// service writes both new and edited records through it. Delete is a hard
// delete - the engine keeps no tombstones or audit trail.
type RequestStore interface {
	SaveRequest(ctx context.Context, req LeaveRequest) error

	// GetRequest returns nil (no error) when the request doesn't exist.
	GetRequest(ctx context.Context, id string) (*LeaveRequest, error)

	// ListRequests returns all requests for an employee, oldest first.
	ListRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListApproved returns the approved-request snapshot balance
	// computation runs over.
	ListApproved(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	DeleteRequest(ctx context.Context, id string) error
}

// OverrideStore persists per-employee override configs.
type OverrideStore interface {
	// GetOverrideConfig returns nil (no error) when the employee has no
	// override config.
	GetOverrideConfig(ctx context.Context, employeeID string) (*OverrideConfig, error)

	SaveOverrideConfig(ctx context.Context, cfg OverrideConfig) error
}
