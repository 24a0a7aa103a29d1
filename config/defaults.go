package config

// DefaultMainnet returns the default wallet configuration for mainnet.
// Mainnet has no faucet; the faucet command requires an explicit URL.
func DefaultMainnet() *Config {
	return &Config{
		Network:   Mainnet,
		DataDir:   DefaultDataDir(),
		RPCURL:    "http://127.0.0.1:8545",
		FaucetURL: "",
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default wallet configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPCURL = "http://127.0.0.1:8645"
	cfg.FaucetURL = "http://127.0.0.1:8646/api/v1/enqueue"
	return cfg
}

// Default returns the default wallet configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
