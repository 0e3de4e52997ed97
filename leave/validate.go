package leave

// =============================================================================
// REQUEST VALIDATOR - Gatekeeper for every write path
// =============================================================================

// ValidateRequest checks a prospective leave request before any write is
// attempted. Checks run in order and the first failure wins:
//
//  1. StartDate <= EndDate, else ErrInvalidDateRange
//  2. A period must be selected, else ErrMissingAcquisitionPeriod
//  3. A fully-consumed period rejects unconditionally with
//     ErrPeriodExhausted, regardless of request size
//  4. Requested days must fit the remaining balance, else
//     *InsufficientBalanceError carrying the available amount
//
// The request's own ID is excluded from the balance scan, so editing an
// approved request in place is validated as if its prior contribution did
// not exist. New requests carry an ID not present in the snapshot, making
// the exclusion a no-op.
//
// No side effects: nothing is mutated, and the engine never clamps an
// over-long request to the available balance.
func ValidateRequest(req LeaveRequest, period *AcquisitionPeriod, c Classification, approved []LeaveRequest) error {
	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidDateRange
	}

	if period == nil {
		return ErrMissingAcquisitionPeriod
	}

	if period.FullyConsumed {
		return ErrPeriodExhausted
	}

	days, err := CountDays(req.StartDate, req.EndDate, c)
	if err != nil {
		return err
	}

	balance := ComputeBalance(*period, approved, c, req.ID)
	if days > balance.Available {
		return &InsufficientBalanceError{Available: balance.Available, Requested: days}
	}

	return nil
}
