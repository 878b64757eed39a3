package walleterrors

import "errors"

var (
	ErrNotFound        = errors.New("not found the given address in any keystore file")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrDecryptKey      = errors.New("error decrypting key")
)
