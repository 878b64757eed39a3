package rpc

import (
	"github.com/vaultlabs/go-vault/ledger"
	"github.com/vaultlabs/go-vault/vault"
)

// Protocol-level codes follow JSON-RPC conventions; ledger failures get
// stable positive codes so clients can map them back to error kinds.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeAlreadyInitialized = 1
	CodeAccountNotFound    = 2
	CodeCorruptRecord      = 3
	CodeUnauthorized       = 4
	CodeInvalidAmount      = 5
	CodeInsufficientFunds  = 6
	CodeAmountOverflow     = 7
)

var errToCode = map[error]int{
	vault.ErrAlreadyInitialized: CodeAlreadyInitialized,
	vault.ErrAccountNotFound:    CodeAccountNotFound,
	ledger.ErrCorruptRecord:     CodeCorruptRecord,
	vault.ErrUnauthorized:       CodeUnauthorized,
	vault.ErrInvalidAmount:      CodeInvalidAmount,
	vault.ErrInsufficientFunds:  CodeInsufficientFunds,
	vault.ErrAmountOverflow:     CodeAmountOverflow,
}

var codeToErr = map[int]error{}

func init() {
	for err, code := range errToCode {
		codeToErr[code] = err
	}
}

func wireError(err error) *Error {
	if code, ok := errToCode[err]; ok {
		return &Error{Code: code, Message: err.Error()}
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}

// ErrorFromCode maps a wire code back to the ledger error it stands for.
// Unknown codes keep the transported Error value.
func ErrorFromCode(wireErr *Error) error {
	if err, ok := codeToErr[wireErr.Code]; ok {
		return err
	}
	return wireErr
}
