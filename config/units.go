package config

// Coin denominations in base units.
const (
	Coin      = 1_000_000 // 10^6 base units per THD
	MilliCoin = 1_000     // 10^3

	// Decimals is the number of fractional digits in a coin amount.
	Decimals = 6
)

// MaxTokenAmount is the largest native token amount accepted by the CLI.
// The ledger caps token supplies below uint64 overflow territory.
const MaxTokenAmount = 1_000_000_000_000_000_000
