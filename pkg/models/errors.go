package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrValidation is wrapped by every error caused by invalid input
	ErrValidation = errors.New("invalid input")
)

var (
	ErrAccountNameNotUnique = fmt.Errorf("%w: the account name must be unique", ErrValidation)
	ErrAccountNameEmpty     = fmt.Errorf("%w: the account name must not be empty", ErrValidation)
	ErrBudgetExists         = fmt.Errorf("%w: there already is a budget for this user", ErrValidation)
	ErrBudgetAmount         = fmt.Errorf("%w: the budget amount must be positive", ErrValidation)
	ErrReferenceNotFound    = fmt.Errorf("%w: a referenced user or account does not exist", ErrValidation)
	ErrNegativeAmount       = fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	ErrIntervalRequired     = fmt.Errorf("%w: recurring transactions need a valid recurring interval", ErrValidation)
	ErrCategoryRequired     = fmt.Errorf("%w: the category must not be empty", ErrValidation)
	ErrMatchRequired        = fmt.Errorf("%w: the match pattern must not be empty", ErrValidation)
	ErrEmailRequired        = fmt.Errorf("%w: the email address must not be empty", ErrValidation)
)
