/*
Package sqlite provides a SQLite-backed implementation of the leave
persistence interfaces.

PURPOSE:
  Implements leave.EmployeeStore, leave.RequestStore and leave.OverrideStore
  using SQLite. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  employees:        Personnel records (classification, nullable hire date)
  leave_requests:   Requests with the acquisition period stored as an
                    explicit (period_start, period_end) date pair - periods
                    are never persisted as first-class rows, only
                    regenerated on demand
  override_configs: Per-employee historical exception periods (JSON blob)

CONCURRENCY:
  Uses sync.Mutex around writes. Balance validation in the engine reads a
  snapshot; this store serializes writers but does not add an optimistic
  version check, so two racing approvals can still over-consume a period
  until the next read.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block,
  single writer at a time, better crash recovery.

USAGE:
  st, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  svc := leave.NewService(st, st, st)
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lexgate/leave-engine/leave"
)

// Store implements the leave persistence interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Compile-time interface checks.
var (
	_ leave.EmployeeStore = (*Store)(nil)
	_ leave.RequestStore  = (*Store)(nil)
	_ leave.OverrideStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		classification TEXT NOT NULL,
		hire_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		consumed_days INTEGER NOT NULL,
		sold_days INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		notes TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL,
		approver_id TEXT,
		approved_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_employee_status
		ON leave_requests(employee_id, status);

	-- Hot path: balance scans filter on the structural period reference.
	CREATE INDEX IF NOT EXISTS idx_requests_period
		ON leave_requests(employee_id, period_start, period_end);

	CREATE TABLE IF NOT EXISTS override_configs (
		employee_id TEXT PRIMARY KEY,
		regular_periods_start_from TEXT NOT NULL,
		periods_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hireDate sql.NullString
	if emp.HireDate != nil {
		hireDate = sql.NullString{String: emp.HireDate.String(), Valid: true}
	}
	createdAt := emp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, classification, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			classification = excluded.classification,
			hire_date = excluded.hire_date`,
		emp.ID, emp.Name, emp.Email, string(emp.Classification),
		hireDate, createdAt.Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*leave.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, classification, hire_date, created_at
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]leave.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, classification, hire_date, created_at
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*leave.Employee, error) {
	var (
		emp            leave.Employee
		email          sql.NullString
		classification string
		hireDate       sql.NullString
		createdAt      string
	)
	if err := row.Scan(&emp.ID, &emp.Name, &email, &classification, &hireDate, &createdAt); err != nil {
		return nil, err
	}
	emp.Email = email.String
	emp.Classification = leave.Classification(classification)
	if hireDate.Valid {
		d, err := leave.ParseDate(hireDate.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt hire_date for employee %s: %w", emp.ID, err)
		}
		emp.HireDate = &d
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		emp.CreatedAt = t
	}
	return &emp, nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (s *Store) SaveRequest(ctx context.Context, req leave.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var approvedAt sql.NullString
	if req.ApprovedAt != nil {
		approvedAt = sql.NullString{String: req.ApprovedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
			(id, employee_id, start_date, end_date, consumed_days, sold_days,
			 status, period_start, period_end, notes, rejection_reason,
			 created_at, approver_id, approved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			consumed_days = excluded.consumed_days,
			sold_days = excluded.sold_days,
			status = excluded.status,
			period_start = excluded.period_start,
			period_end = excluded.period_end,
			notes = excluded.notes,
			rejection_reason = excluded.rejection_reason,
			approver_id = excluded.approver_id,
			approved_at = excluded.approved_at`,
		req.ID, req.EmployeeID, req.StartDate.String(), req.EndDate.String(),
		req.ConsumedDays, req.SoldDays, string(req.Status),
		req.PeriodStart.String(), req.PeriodEnd.String(),
		req.Notes, req.RejectionReason,
		req.CreatedAt.Format(time.RFC3339), req.ApproverID, approvedAt,
	)
	return err
}

const selectRequest = `
	SELECT id, employee_id, start_date, end_date, consumed_days, sold_days,
	       status, period_start, period_end, notes, rejection_reason,
	       created_at, approver_id, approved_at
	FROM leave_requests`

func (s *Store) GetRequest(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx, selectRequest+` WHERE id = ?`, id)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) ListRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.listRequests(ctx, selectRequest+`
		WHERE employee_id = ? ORDER BY created_at, id`, employeeID)
}

func (s *Store) ListApproved(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.listRequests(ctx, selectRequest+`
		WHERE employee_id = ? AND status = 'approved' ORDER BY created_at, id`, employeeID)
}

func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM leave_requests WHERE id = ?`, id)
	return err
}

func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []leave.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func scanRequest(row scanner) (*leave.LeaveRequest, error) {
	var (
		req                    leave.LeaveRequest
		startDate, endDate     string
		status                 string
		periodStart, periodEnd string
		notes, rejectionReason sql.NullString
		createdAt              string
		approverID, approvedAt sql.NullString
	)
	if err := row.Scan(&req.ID, &req.EmployeeID, &startDate, &endDate,
		&req.ConsumedDays, &req.SoldDays, &status, &periodStart, &periodEnd,
		&notes, &rejectionReason, &createdAt, &approverID, &approvedAt); err != nil {
		return nil, err
	}

	var err error
	if req.StartDate, err = leave.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("corrupt start_date for request %s: %w", req.ID, err)
	}
	if req.EndDate, err = leave.ParseDate(endDate); err != nil {
		return nil, fmt.Errorf("corrupt end_date for request %s: %w", req.ID, err)
	}
	if req.PeriodStart, err = leave.ParseDate(periodStart); err != nil {
		return nil, fmt.Errorf("corrupt period_start for request %s: %w", req.ID, err)
	}
	if req.PeriodEnd, err = leave.ParseDate(periodEnd); err != nil {
		return nil, fmt.Errorf("corrupt period_end for request %s: %w", req.ID, err)
	}

	req.Status = leave.RequestStatus(status)
	req.Notes = notes.String
	req.RejectionReason = rejectionReason.String
	req.ApproverID = approverID.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		req.CreatedAt = t
	}
	if approvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, approvedAt.String); err == nil {
			req.ApprovedAt = &t
		}
	}
	return &req, nil
}

// =============================================================================
// OVERRIDE CONFIGS
// =============================================================================

// overridePeriodRow is the JSON shape stored in periods_json.
type overridePeriodRow struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	TotalDays     int    `json:"total_days"`
	Note          string `json:"note,omitempty"`
	FullyConsumed bool   `json:"fully_consumed,omitempty"`
}

func (s *Store) SaveOverrideConfig(ctx context.Context, cfg leave.OverrideConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]overridePeriodRow, len(cfg.Periods))
	for i, p := range cfg.Periods {
		rows[i] = overridePeriodRow{
			Start:         p.Start.String(),
			End:           p.End.String(),
			TotalDays:     p.TotalDays,
			Note:          p.Note,
			FullyConsumed: p.FullyConsumed,
		}
	}
	periodsJSON, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO override_configs (employee_id, regular_periods_start_from, periods_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(employee_id) DO UPDATE SET
			regular_periods_start_from = excluded.regular_periods_start_from,
			periods_json = excluded.periods_json,
			updated_at = excluded.updated_at`,
		cfg.EmployeeID, cfg.RegularPeriodsStartFrom.String(),
		string(periodsJSON), time.Now().Format(time.RFC3339),
	)
	return err
}

func (s *Store) GetOverrideConfig(ctx context.Context, employeeID string) (*leave.OverrideConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT employee_id, regular_periods_start_from, periods_json
		FROM override_configs WHERE employee_id = ?`, employeeID)

	var (
		cfg          leave.OverrideConfig
		regularStart string
		periodsJSON  string
	)
	err := row.Scan(&cfg.EmployeeID, &regularStart, &periodsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if cfg.RegularPeriodsStartFrom, err = leave.ParseDate(regularStart); err != nil {
		return nil, fmt.Errorf("corrupt override config for employee %s: %w", employeeID, err)
	}

	var rows []overridePeriodRow
	if err := json.Unmarshal([]byte(periodsJSON), &rows); err != nil {
		return nil, fmt.Errorf("corrupt override periods for employee %s: %w", employeeID, err)
	}
	for _, r := range rows {
		start, err := leave.ParseDate(r.Start)
		if err != nil {
			return nil, fmt.Errorf("corrupt override period start for employee %s: %w", employeeID, err)
		}
		end, err := leave.ParseDate(r.End)
		if err != nil {
			return nil, fmt.Errorf("corrupt override period end for employee %s: %w", employeeID, err)
		}
		cfg.Periods = append(cfg.Periods, leave.OverridePeriod{
			Start:         start,
			End:           end,
			TotalDays:     r.TotalDays,
			Note:          r.Note,
			FullyConsumed: r.FullyConsumed,
		})
	}
	return &cfg, nil
}
