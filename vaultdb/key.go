package vaultdb

import "github.com/vaultlabs/go-vault/common/types"

// Key prefixes. Account records are the only kind stored today; the prefix
// byte keeps room for future record kinds in the same database.
const (
	DBKP_ACCOUNT = byte(1)
)

func encodeAccountKey(addr types.Address) []byte {
	key := make([]byte, 1+types.AddressSize)
	key[0] = DBKP_ACCOUNT
	copy(key[1:], addr.Bytes())
	return key
}
