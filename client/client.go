// Package client is a thin HTTP client for the gvault rpc surface, used by
// the command line tools.
package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/rpc"
	"github.com/vaultlabs/go-vault/vault"
)

type Client struct {
	url        string
	httpClient *http.Client
}

func New(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) call(method string, params interface{}, result interface{}) error {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return err
	}

	body, err := json.Marshal(&rpc.Request{Method: method, Params: rawParams, ID: 1})
	if err != nil {
		return err
	}

	httpResp, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "call %s", method)
	}
	defer httpResp.Body.Close()

	resp := struct {
		ID     uint64          `json:"id"`
		Result json.RawMessage `json:"result"`
		Error  *rpc.Error      `json:"error"`
	}{}
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return errors.Wrapf(err, "decode %s response", method)
	}
	if resp.Error != nil {
		return rpc.ErrorFromCode(resp.Error)
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return errors.Wrapf(err, "decode %s result", method)
		}
	}
	return nil
}

func (c *Client) InitializeAccount(owner types.Address) (types.Address, error) {
	result := &rpc.InitializeAccountResult{}
	err := c.call("vault_initializeAccount", &rpc.InitializeAccountParams{Owner: owner}, result)
	return result.Account, err
}

func (c *Client) Deposit(account, caller types.Address, amount uint64) (uint64, error) {
	result := &rpc.TotalResult{}
	err := c.call("vault_deposit", &rpc.AmountParams{
		Account: account,
		Caller:  caller,
		Amount:  rpc.Uint64String(amount),
	}, result)
	return uint64(result.TotalDeposits), err
}

func (c *Client) Withdraw(account, caller types.Address, amount uint64) (uint64, error) {
	result := &rpc.TotalResult{}
	err := c.call("vault_withdraw", &rpc.AmountParams{
		Account: account,
		Caller:  caller,
		Amount:  rpc.Uint64String(amount),
	}, result)
	return uint64(result.TotalDeposits), err
}

func (c *Client) GetBalance(account, caller types.Address) (uint64, error) {
	result := &rpc.TotalResult{}
	err := c.call("vault_getBalance", &rpc.BalanceParams{Account: account, Caller: caller}, result)
	return uint64(result.TotalDeposits), err
}

func (c *Client) Metrics() (*vault.MetricsSnapshot, error) {
	result := &vault.MetricsSnapshot{}
	err := c.call("vault_metrics", struct{}{}, result)
	return result, err
}
