package rpc_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultlabs/go-vault/client"
	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/rpc"
	"github.com/vaultlabs/go-vault/vault"
	"github.com/vaultlabs/go-vault/vaultdb"
)

func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()

	store, err := vaultdb.NewMemStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := rpc.NewServer(vault.NewManager(store), "127.0.0.1:0", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, client.New(ts.URL)
}

func TestFullFlow(t *testing.T) {
	_, c := newTestServer(t)

	owner, _, err := types.CreateAddress()
	require.NoError(t, err)

	account, err := c.InitializeAccount(owner)
	require.NoError(t, err)
	assert.Equal(t, vault.DepositAddress(owner), account)

	balance, err := c.GetBalance(account, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	total, err := c.Deposit(account, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), total)

	total, err = c.Deposit(account, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(200000000), total)

	total, err = c.Withdraw(account, owner, 100000000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), total)

	balance, err = c.GetBalance(account, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(100000000), balance)
}

func TestErrorMapping(t *testing.T) {
	_, c := newTestServer(t)

	owner, _, err := types.CreateAddress()
	require.NoError(t, err)

	account, err := c.InitializeAccount(owner)
	require.NoError(t, err)

	_, err = c.InitializeAccount(owner)
	assert.Equal(t, vault.ErrAlreadyInitialized, err)

	_, err = c.Deposit(account, owner, 0)
	assert.Equal(t, vault.ErrInvalidAmount, err)

	_, err = c.Withdraw(account, owner, 1)
	assert.Equal(t, vault.ErrInsufficientFunds, err)

	other, _, err := types.CreateAddress()
	require.NoError(t, err)
	_, err = c.GetBalance(account, other)
	assert.Equal(t, vault.ErrUnauthorized, err)

	_, err = c.GetBalance(vault.DepositAddress(other), other)
	assert.Equal(t, vault.ErrAccountNotFound, err)
}

func TestMetricsEndpoint(t *testing.T) {
	_, c := newTestServer(t)

	owner, _, err := types.CreateAddress()
	require.NoError(t, err)

	account, err := c.InitializeAccount(owner)
	require.NoError(t, err)
	_, err = c.Deposit(account, owner, 5)
	require.NoError(t, err)

	snap, err := c.Metrics()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Inits)
	assert.Equal(t, uint64(1), snap.Deposits)
}

func TestMethodNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	body, _ := json.Marshal(&rpc.Request{Method: "vault_close", ID: 3})
	httpResp, err := ts.Client().Post(ts.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer httpResp.Body.Close()

	resp := &rpc.Response{}
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeMethodNotFound, resp.Error.Code)
	assert.Equal(t, uint64(3), resp.ID)
}

func TestParseError(t *testing.T) {
	ts, _ := newTestServer(t)

	httpResp, err := ts.Client().Post(ts.URL, "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer httpResp.Body.Close()

	resp := &rpc.Response{}
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, rpc.CodeParseError, resp.Error.Code)
}

func TestUint64StringRoundTrip(t *testing.T) {
	data, err := json.Marshal(rpc.Uint64String(18446744073709551615))
	require.NoError(t, err)
	assert.Equal(t, `"18446744073709551615"`, string(data))

	var value rpc.Uint64String
	require.NoError(t, json.Unmarshal(data, &value))
	assert.Equal(t, rpc.Uint64String(18446744073709551615), value)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &value))
}
