package account

import "errors"

var (
	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmptyOwner is returned when an account is created with a blank owner.
	ErrEmptyOwner = errors.New("owner must not be empty")

	// ErrNegativeBalance is returned when an account is created with a negative balance.
	ErrNegativeBalance = errors.New("balance must not be negative")

	// ErrNegativeLimit is returned when an account is created with a negative withdraw limit.
	ErrNegativeLimit = errors.New("single withdraw limit must not be negative")

	// ErrAccountExists is returned when an account is created with an id
	// already present in the store.
	ErrAccountExists = errors.New("account already exists")

	// ErrEmptyTarget is returned when a transfer names no target account.
	ErrEmptyTarget = errors.New("target account id must not be empty")

	// ErrAmountMustBePositive is returned when a transfer amount is zero or negative.
	ErrAmountMustBePositive = errors.New("transfer amount must be positive")

	// ErrSameAccount is returned when a transfer is attempted from an account to itself.
	ErrSameAccount = errors.New("cannot transfer to same account")

	// ErrWithdrawLimitExceeded is returned when a transfer amount exceeds the
	// source account's single withdraw limit.
	ErrWithdrawLimitExceeded = errors.New("single withdraw limit exceeded")

	// ErrInsufficientFunds is returned when a transfer amount exceeds the
	// source account's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
