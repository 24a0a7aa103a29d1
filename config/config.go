// Package config handles wallet configuration.
//
// Configuration comes from three layers, lowest precedence first:
// built-in defaults per network, the wallet.conf file in the data
// directory, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds wallet runtime configuration.
type Config struct {
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// RPCURL is the JSON-RPC endpoint of the Threadnet node that hosts
	// the wallet engine.
	RPCURL string `conf:"rpc.url"`

	// FaucetURL is the faucet enqueue endpoint. Empty means no faucet
	// is configured for the network.
	FaucetURL string `conf:"faucet.url"`

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.threadnet
//	macOS:   ~/Library/Application Support/Threadnet
//	Windows: %APPDATA%\Threadnet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".threadnet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Threadnet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Threadnet")
		}
		return filepath.Join(home, "AppData", "Roaming", "Threadnet")
	default:
		return filepath.Join(home, ".threadnet")
	}
}

// ChainDataDir returns the network-specific data directory.
func (c *Config) ChainDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.ChainDataDir(), "keystore")
}

// CacheDir returns the account cache database directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.ChainDataDir(), "cache")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "wallet.conf")
}
