package vault

import "errors"

var (
	ErrAlreadyInitialized = errors.New("account already initialized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorized       = errors.New("caller is not the account owner")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInsufficientFunds  = errors.New("withdrawal amount exceeds total deposits")
	ErrAmountOverflow     = errors.New("deposit would overflow total deposits")
)
