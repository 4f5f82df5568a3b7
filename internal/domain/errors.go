package domain

import "errors"

var (
	// recovered inside the input collector
	ErrInvalidWeightInput   = errors.New("weight is not a number")
	ErrNonPositiveWeight    = errors.New("weight must be greater than 0")
	ErrWeightBudgetExceeded = errors.New("weights cannot exceed 100%")
	ErrEmptyTicker          = errors.New("blank ticker")
	ErrNoTickers            = errors.New("no tickers entered")

	// terminal for the run
	ErrCollectionAborted        = errors.New("input aborted")
	ErrPriceRetrieval           = errors.New("failed to retrieve prices")
	ErrInsufficientObservations = errors.New("not enough overlapping daily returns")
	ErrWeightMismatch           = errors.New("weight vector does not match tickers")
)
