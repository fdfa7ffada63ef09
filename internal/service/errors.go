package service

import "errors"

var (
	ErrMissingInput     = errors.New("missing input")
	ErrMalformedRow     = errors.New("malformed row")
	ErrModelUnavailable = errors.New("model unavailable")
	ErrInvalidBudget    = errors.New("invalid budget")
	ErrNoBudgets        = errors.New("no budgets set")
	ErrNoExpenseData    = errors.New("no expense data uploaded yet")
	ErrAdvisorDisabled  = errors.New("advisor is not configured")
)
