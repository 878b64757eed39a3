package ledger

import (
	"encoding/binary"
	"errors"

	"github.com/vaultlabs/go-vault/common/types"
)

// AccountRecordSize is the exact persisted size of one account record:
// owner address followed by the running total, big-endian.
const AccountRecordSize = types.AddressSize + 8

var ErrCorruptRecord = errors.New("corrupt account record")

// Account is the persisted state of one deposit account. Owner is set at
// creation and never changes afterwards; TotalDeposits is the net balance
// of all deposits minus all withdrawals.
type Account struct {
	Owner         types.Address
	TotalDeposits uint64
}

func (account *Account) Serialize() ([]byte, error) {
	buf := make([]byte, AccountRecordSize)
	copy(buf[:types.AddressSize], account.Owner.Bytes())
	binary.BigEndian.PutUint64(buf[types.AddressSize:], account.TotalDeposits)
	return buf, nil
}

func (account *Account) Deserialize(buf []byte) error {
	if len(buf) != AccountRecordSize {
		return ErrCorruptRecord
	}
	if err := account.Owner.SetBytes(buf[:types.AddressSize]); err != nil {
		return ErrCorruptRecord
	}
	account.TotalDeposits = binary.BigEndian.Uint64(buf[types.AddressSize:])
	return nil
}
