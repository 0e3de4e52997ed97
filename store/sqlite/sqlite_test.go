package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgate/leave-engine/leave"
	"github.com/lexgate/leave-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "leave.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEmployeeRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	hire := leave.NewDate(2024, time.January, 15)
	emp := leave.Employee{
		ID:             "emp-1",
		Name:           "Ada Associate",
		Email:          "ada@lexgate.example",
		Classification: leave.ClassBusiness,
		HireDate:       &hire,
		CreatedAt:      time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.SaveEmployee(ctx, emp))

	got, err := st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.Email, got.Email)
	assert.Equal(t, leave.ClassBusiness, got.Classification)
	require.NotNil(t, got.HireDate)
	assert.True(t, got.HireDate.Equal(hire))

	// Upsert updates in place.
	emp.Name = "Ada Senior Associate"
	require.NoError(t, st.SaveEmployee(ctx, emp))
	got, err = st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Senior Associate", got.Name)

	list, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployee_NilHireDate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{
		ID:             "emp-2",
		Name:           "No Hire Date",
		Classification: leave.ClassConsecutive,
	}))

	got, err := st.GetEmployee(ctx, "emp-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.HireDate)
}

func TestGetEmployee_Absent(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetEmployee(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRequestRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	approvedAt := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	req := leave.LeaveRequest{
		ID:           "req-1",
		EmployeeID:   "emp-1",
		StartDate:    leave.NewDate(2024, time.March, 4),
		EndDate:      leave.NewDate(2024, time.March, 8),
		ConsumedDays: 5,
		SoldDays:     2,
		Status:       leave.StatusApproved,
		PeriodStart:  leave.NewDate(2024, time.January, 15),
		PeriodEnd:    leave.NewDate(2025, time.January, 15),
		Notes:        "spring break",
		CreatedAt:    time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC),
		ApproverID:   "admin-9",
		ApprovedAt:   &approvedAt,
	}
	require.NoError(t, st.SaveRequest(ctx, req))

	got, err := st.GetRequest(ctx, "req-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.StartDate.Equal(req.StartDate))
	assert.True(t, got.EndDate.Equal(req.EndDate))
	assert.Equal(t, 5, got.ConsumedDays)
	assert.Equal(t, 2, got.SoldDays)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.True(t, got.PeriodStart.Equal(req.PeriodStart))
	assert.True(t, got.PeriodEnd.Equal(req.PeriodEnd))
	assert.Equal(t, "spring break", got.Notes)
	assert.Equal(t, "admin-9", got.ApproverID)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(approvedAt))
}

func TestListApproved_FiltersStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := leave.LeaveRequest{
		EmployeeID:  "emp-1",
		StartDate:   leave.NewDate(2024, time.March, 4),
		EndDate:     leave.NewDate(2024, time.March, 8),
		PeriodStart: leave.NewDate(2024, time.January, 15),
		PeriodEnd:   leave.NewDate(2025, time.January, 15),
	}

	approved := base
	approved.ID = "req-1"
	approved.Status = leave.StatusApproved
	approved.CreatedAt = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	pending := base
	pending.ID = "req-2"
	pending.Status = leave.StatusPending
	pending.CreatedAt = time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)

	rejected := base
	rejected.ID = "req-3"
	rejected.Status = leave.StatusRejected
	rejected.CreatedAt = time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	for _, r := range []leave.LeaveRequest{approved, pending, rejected} {
		require.NoError(t, st.SaveRequest(ctx, r))
	}

	all, err := st.ListRequests(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "req-1", all[0].ID, "oldest first")

	onlyApproved, err := st.ListApproved(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, onlyApproved, 1)
	assert.Equal(t, "req-1", onlyApproved[0].ID)
}

func TestDeleteRequest(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req := leave.LeaveRequest{
		ID:          "req-1",
		EmployeeID:  "emp-1",
		StartDate:   leave.NewDate(2024, time.March, 4),
		EndDate:     leave.NewDate(2024, time.March, 8),
		Status:      leave.StatusPending,
		PeriodStart: leave.NewDate(2024, time.January, 15),
		PeriodEnd:   leave.NewDate(2025, time.January, 15),
	}
	require.NoError(t, st.SaveRequest(ctx, req))
	require.NoError(t, st.DeleteRequest(ctx, "req-1"))

	got, err := st.GetRequest(ctx, "req-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOverrideConfigRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cfg := leave.OverrideConfig{
		EmployeeID: "emp-1",
		Periods: []leave.OverridePeriod{
			{
				Start:         leave.NewDate(2024, time.January, 15),
				End:           leave.NewDate(2024, time.September, 30),
				TotalDays:     15,
				Note:          "pre-merger accrual",
				FullyConsumed: true,
			},
		},
		RegularPeriodsStartFrom: leave.NewDate(2024, time.October, 1),
	}
	require.NoError(t, st.SaveOverrideConfig(ctx, cfg))

	got, err := st.GetOverrideConfig(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.RegularPeriodsStartFrom.Equal(cfg.RegularPeriodsStartFrom))
	require.Len(t, got.Periods, 1)
	assert.True(t, got.Periods[0].Start.Equal(cfg.Periods[0].Start))
	assert.Equal(t, 15, got.Periods[0].TotalDays)
	assert.Equal(t, "pre-merger accrual", got.Periods[0].Note)
	assert.True(t, got.Periods[0].FullyConsumed)

	// Replace with an empty period list.
	cfg.Periods = nil
	require.NoError(t, st.SaveOverrideConfig(ctx, cfg))
	got, err = st.GetOverrideConfig(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, got.Periods)
}

func TestGetOverrideConfig_Absent(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetOverrideConfig(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreBacksLifecycleService(t *testing.T) {
	// The SQLite store slots under the lifecycle service exactly like the
	// in-memory one.
	st := newTestStore(t)
	ctx := context.Background()

	hire := leave.NewDate(2024, time.January, 15)
	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{
		ID:             "emp-1",
		Name:           "Ada Associate",
		Classification: leave.ClassBusiness,
		HireDate:       &hire,
	}))

	svc := leave.NewService(st, st, st)
	svc.Now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	req, err := svc.Create(ctx, leave.CreateInput{
		EmployeeID:  "emp-1",
		StartDate:   leave.NewDate(2024, time.March, 4),
		EndDate:     leave.NewDate(2024, time.March, 8),
		PeriodStart: leave.NewDate(2024, time.January, 15),
		PeriodEnd:   leave.NewDate(2025, time.January, 15),
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, req.ID, "admin-9")
	require.NoError(t, err)

	balances, err := svc.PeriodsFor(ctx, "emp-1", leave.NewDate(2025, time.June, 1))
	require.NoError(t, err)
	require.NotEmpty(t, balances)
	assert.Equal(t, leave.Balance{Total: 20, Used: 5, Available: 15}, balances[0].Balance)
}
