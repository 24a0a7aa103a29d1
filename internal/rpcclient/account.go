package rpcclient

import (
	"github.com/Klingon-tech/threadnet-wallet/internal/rpc"
)

// Typed wrappers over the node's account API. The wallet engine lives in
// the node; these calls carry credentials and relay engine results.

// SyncAccount asks the engine to sync the named account with the chain.
func (c *Client) SyncAccount(name, password string) (*rpc.AccountSyncResult, error) {
	var result rpc.AccountSyncResult
	err := c.Call("account_sync", rpc.AccountParam{Name: name, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// NewAddress asks the engine to generate the next unused address.
func (c *Client) NewAddress(name, password string) (*rpc.AccountAddressResult, error) {
	var result rpc.AccountAddressResult
	err := c.Call("account_newAddress", rpc.AccountParam{Name: name, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAddresses returns all addresses the engine has generated for the account.
func (c *Client) ListAddresses(name, password string) (*rpc.AccountAddressListResult, error) {
	var result rpc.AccountAddressListResult
	err := c.Call("account_listAddresses", rpc.AccountParam{Name: name, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBalance returns the account's balance as tracked by the engine.
func (c *Client) GetBalance(name, password string) (*rpc.AccountBalanceResult, error) {
	var result rpc.AccountBalanceResult
	err := c.Call("account_getBalance", rpc.AccountParam{Name: name, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTransactions returns the account's transaction history.
func (c *Client) ListTransactions(name, password string, limit, offset int) (*rpc.AccountHistoryResult, error) {
	var result rpc.AccountHistoryResult
	param := rpc.AccountHistoryParam{Name: name, Password: password, Limit: limit, Offset: offset}
	err := c.Call("account_listTransactions", param, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Send asks the engine to build, sign and submit a base-coin transfer.
// Amount is in base units.
func (c *Client) Send(name, password, to string, amount uint64) (*rpc.AccountSendResult, error) {
	var result rpc.AccountSendResult
	param := rpc.AccountSendParam{Name: name, Password: password, To: to, Amount: amount}
	err := c.Call("account_send", param, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SendToken asks the engine to transfer native tokens. Amount is in raw
// token units.
func (c *Client) SendToken(name, password, to, tokenID string, amount uint64) (*rpc.AccountSendResult, error) {
	var result rpc.AccountSendResult
	param := rpc.AccountSendTokenParam{Name: name, Password: password, To: to, TokenID: tokenID, Amount: amount}
	err := c.Call("account_sendToken", param, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
