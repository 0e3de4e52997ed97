package leave_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgate/leave-engine/leave"
)

func validRequest(period leave.AcquisitionPeriod) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:          "req-new",
		EmployeeID:  "emp-1",
		StartDate:   leave.NewDate(2024, time.March, 4), // Monday
		EndDate:     leave.NewDate(2024, time.March, 8), // Friday
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	}
}

func TestValidateRequest_DateRangeFirst(t *testing.T) {
	// The date-range check wins even when the period is also missing.
	req := leave.LeaveRequest{
		StartDate: leave.NewDate(2024, time.March, 8),
		EndDate:   leave.NewDate(2024, time.March, 4),
	}

	err := leave.ValidateRequest(req, nil, leave.ClassBusiness, nil)
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestValidateRequest_MissingPeriod(t *testing.T) {
	period := standardPeriod2024()
	req := validRequest(period)

	err := leave.ValidateRequest(req, nil, leave.ClassBusiness, nil)
	assert.ErrorIs(t, err, leave.ErrMissingAcquisitionPeriod)
}

func TestValidateRequest_ExhaustedPeriod_RejectsAnySize(t *testing.T) {
	total := 15
	period := leave.AcquisitionPeriod{
		Start:         leave.NewDate(2024, time.January, 15),
		End:           leave.NewDate(2024, time.September, 30),
		OverrideTotal: &total,
		FullyConsumed: true,
	}

	req := validRequest(period)
	req.StartDate = leave.NewDate(2024, time.March, 4)
	req.EndDate = leave.NewDate(2024, time.March, 4) // a single day is still rejected

	err := leave.ValidateRequest(req, &period, leave.ClassBusiness, nil)
	assert.ErrorIs(t, err, leave.ErrPeriodExhausted)
}

func TestValidateRequest_InsufficientBalance_CarriesAvailable(t *testing.T) {
	// GIVEN: total 20 with 12 days already consumed (8 available)
	// WHEN: requesting 10 business days
	// THEN: rejection carries available = 8

	period := standardPeriod2024()
	approved := []leave.LeaveRequest{approvedRequest("req-1", period, 12)}

	req := validRequest(period)
	req.StartDate = leave.NewDate(2024, time.April, 1)  // Monday
	req.EndDate = leave.NewDate(2024, time.April, 12)   // Friday next week: 10 business days

	err := leave.ValidateRequest(req, &period, leave.ClassBusiness, approved)
	require.Error(t, err)

	var ibe *leave.InsufficientBalanceError
	require.True(t, errors.As(err, &ibe))
	assert.Equal(t, 8, ibe.Available)
	assert.Equal(t, 10, ibe.Requested)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestValidateRequest_ExactFit_Succeeds(t *testing.T) {
	// With 8 days available, a request for exactly 8 business days passes.

	period := standardPeriod2024()
	approved := []leave.LeaveRequest{approvedRequest("req-1", period, 12)}

	req := validRequest(period)
	req.StartDate = leave.NewDate(2024, time.April, 1)  // Monday
	req.EndDate = leave.NewDate(2024, time.April, 10)   // Wednesday next week: 8 business days

	assert.NoError(t, leave.ValidateRequest(req, &period, leave.ClassBusiness, approved))
}

func TestValidateRequest_EditExcludesOwnContribution(t *testing.T) {
	// GIVEN: an approved request consuming 12 days, being edited down to 5
	// THEN: validation sees available = 20, as if the request did not exist

	period := standardPeriod2024()
	existing := approvedRequest("req-1", period, 12)
	approved := []leave.LeaveRequest{existing}

	edited := existing
	edited.StartDate = leave.NewDate(2024, time.May, 6)  // Monday
	edited.EndDate = leave.NewDate(2024, time.May, 10)   // Friday: 5 business days

	assert.NoError(t, leave.ValidateRequest(edited, &period, leave.ClassBusiness, approved))
}
