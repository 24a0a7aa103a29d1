// Package rpc defines the JSON-RPC 2.0 wire types for the node's
// account API. The node hosts the wallet engine; this client only
// shuttles parameters and results.
package rpc

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Account param types ─────────────────────────────────────────────────

// AccountParam is used by endpoints that need only the account
// credentials (account_sync, account_newAddress, account_listAddresses,
// account_getBalance).
type AccountParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AccountSendParam is used by account_send. Amount is in base units.
type AccountSendParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	To       string `json:"to"`
	Amount   uint64 `json:"amount"`
}

// AccountSendTokenParam is used by account_sendToken. Amount is in raw
// token units, uninterpreted by the client.
type AccountSendTokenParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	To       string `json:"to"`
	TokenID  string `json:"token_id"`
	Amount   uint64 `json:"amount"`
}

// AccountHistoryParam is used by account_listTransactions.
type AccountHistoryParam struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// ── Account result types ────────────────────────────────────────────────

// AccountSyncResult is returned by account_sync.
type AccountSyncResult struct {
	Height    uint64 `json:"height"`
	Spendable uint64 `json:"spendable"`
	Total     uint64 `json:"total"`
}

// AccountAddressResult is returned by account_newAddress.
type AccountAddressResult struct {
	Index   uint32 `json:"index"`
	Change  uint32 `json:"change"` // 0=external, 1=internal
	Address string `json:"address"`
}

// AccountAddressEntry describes one derived address in list results.
type AccountAddressEntry struct {
	Index   uint32 `json:"index"`
	Change  uint32 `json:"change"`
	Address string `json:"address"`
}

// AccountAddressListResult is returned by account_listAddresses.
type AccountAddressListResult struct {
	Addresses []AccountAddressEntry `json:"addresses"`
}

// TokenBalanceEntry describes the balance of a single native token.
type TokenBalanceEntry struct {
	TokenID  string `json:"token_id"`
	Amount   uint64 `json:"amount"`
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Decimals uint8  `json:"decimals,omitempty"`
}

// AccountBalanceResult is returned by account_getBalance.
type AccountBalanceResult struct {
	Spendable    uint64              `json:"spendable"`
	Total        uint64              `json:"total"`
	Immature     uint64              `json:"immature"`
	Locked       uint64              `json:"locked"`
	NativeTokens []TokenBalanceEntry `json:"native_tokens,omitempty"`
}

// TxHistoryEntry describes a single transaction in account history.
type TxHistoryEntry struct {
	TxHash      string `json:"tx_hash"`
	Height      uint64 `json:"height"`
	Timestamp   uint64 `json:"timestamp"`
	Amount      uint64 `json:"amount"`
	Fee         uint64 `json:"fee"`
	Incoming    bool   `json:"incoming"`
	Confirmed   bool   `json:"confirmed"`
	TokenID     string `json:"token_id,omitempty"`
	TokenAmount uint64 `json:"token_amount,omitempty"`
}

// AccountHistoryResult is returned by account_listTransactions.
type AccountHistoryResult struct {
	Total   int              `json:"total"`
	Entries []TxHistoryEntry `json:"entries"`
}

// AccountSendResult is returned by account_send and account_sendToken.
type AccountSendResult struct {
	TxHash string `json:"tx_hash"`
}
