package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vaultlabs/go-vault/common/types"
)

// Uint64String carries a uint64 as a quoted decimal string on the wire, so
// totals survive JSON clients that parse numbers as floats.
type Uint64String uint64

func (u Uint64String) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(uint64(u), 10))), nil
}

func (u *Uint64String) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid uint64 value %s", data)
	}
	*u = Uint64String(value)
	return nil
}

type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     uint64          `json:"id"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

type Response struct {
	ID     uint64      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *Error      `json:"error,omitempty"`
}

type InitializeAccountParams struct {
	Owner types.Address `json:"owner"`
}

type InitializeAccountResult struct {
	Account types.Address `json:"account"`
}

type AmountParams struct {
	Account types.Address `json:"account"`
	Caller  types.Address `json:"caller"`
	Amount  Uint64String  `json:"amount"`
}

type BalanceParams struct {
	Account types.Address `json:"account"`
	Caller  types.Address `json:"caller"`
}

type TotalResult struct {
	TotalDeposits Uint64String `json:"totalDeposits"`
}
