// internal/config/config.go
package config

import (
	"time"

	"github.com/altuslabsxyz/dwapp/internal/paths"
	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// Config is the single source of truth for dwapp configuration.
// Priority: defaults < config file < environment variables < CLI flags
type Config struct {
	Node    NodeConfig    `toml:"node"`
	Wallet  WalletConfig  `toml:"wallet"`
	Tx      TxConfig      `toml:"tx"`
	Poll    PollConfig    `toml:"poll"`
	History HistoryConfig `toml:"history"`
	Output  OutputConfig  `toml:"output"`
}

// NodeConfig holds the REST endpoint settings.
type NodeConfig struct {
	APIURL  string        `toml:"api_url"`
	Timeout time.Duration `toml:"timeout"`
}

// WalletConfig holds local signing key settings.
type WalletConfig struct {
	// Mnemonic is only ever read from the environment, never from the file.
	Mnemonic     string `toml:"-"`
	MnemonicFile string `toml:"mnemonic_file"`
	Bech32Prefix string `toml:"bech32_prefix"`
	HDPath       string `toml:"hd_path"`
}

// TxConfig holds transaction defaults.
type TxConfig struct {
	GasLimit                uint64 `toml:"gas_limit"` // 0 = estimate by simulation
	GasPrice                string `toml:"gas_price"`
	GasAdjustment           string `toml:"gas_adjustment"`
	Memo                    string `toml:"memo"`
	AllowLeadingZeroAmounts bool   `toml:"allow_leading_zero_amounts"`
}

// PollConfig bounds settlement polling.
type PollConfig struct {
	Attempts int           `toml:"attempts"`
	Interval time.Duration `toml:"interval"`
}

// HistoryConfig holds submission journal settings.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// OutputConfig holds CLI rendering settings.
type OutputConfig struct {
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	return paths.DefaultHomeDir()
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	dataDir := DefaultDataDir()
	poll := network.DefaultPollPolicy()
	return &Config{
		Node: NodeConfig{
			APIURL:  "http://localhost:1317",
			Timeout: 30 * time.Second,
		},
		Wallet: WalletConfig{
			MnemonicFile: paths.MnemonicPath(dataDir),
			Bech32Prefix: "dys",
			HDPath:       "m/44'/118'/0'/0/0",
		},
		Tx: TxConfig{
			GasLimit:      0,
			GasPrice:      "",
			GasAdjustment: "1.5",
		},
		Poll: PollConfig{
			Attempts: int(poll.Attempts),
			Interval: poll.Interval,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    paths.HistoryPath(dataDir),
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// ClientConfig converts the node and poll sections into a client config.
func (c *Config) ClientConfig() *network.ClientConfig {
	return &network.ClientConfig{
		APIURL:  c.Node.APIURL,
		Timeout: c.Node.Timeout,
		Poll: &network.PollPolicy{
			Attempts: uint(c.Poll.Attempts),
			Interval: c.Poll.Interval,
		},
	}
}
