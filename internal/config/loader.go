// internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/dwapp/internal/paths"
)

// ConfigFileName is the default config file name.
const ConfigFileName = paths.ConfigFile

// Environment variable names
const (
	EnvAPIURL        = "DWAPP_API_URL"
	EnvTimeout       = "DWAPP_TIMEOUT"
	EnvMnemonic      = "DWAPP_MNEMONIC" //nolint:gosec // This is an env var name, not a credential
	EnvMnemonicFile  = "DWAPP_MNEMONIC_FILE"
	EnvBech32Prefix  = "DWAPP_BECH32_PREFIX"
	EnvGasLimit      = "DWAPP_GAS_LIMIT"
	EnvGasPrice      = "DWAPP_GAS_PRICE"
	EnvGasAdjustment = "DWAPP_GAS_ADJUSTMENT"
	EnvPollAttempts  = "DWAPP_POLL_ATTEMPTS"
	EnvPollInterval  = "DWAPP_POLL_INTERVAL"
	EnvHistory       = "DWAPP_HISTORY"
	EnvOutput        = "DWAPP_OUTPUT"
	EnvNoColor       = "NO_COLOR"
)

// Loader loads configuration from file, environment, and applies defaults.
type Loader struct {
	dataDir    string
	configPath string // explicit config path (empty = use default)
}

// NewLoader creates a new config loader.
// dataDir is the base data directory (for finding dwapp.toml).
// configPath is an explicit config file path (empty = use dataDir/dwapp.toml).
func NewLoader(dataDir, configPath string) *Loader {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return &Loader{
		dataDir:    dataDir,
		configPath: configPath,
	}
}

// Load loads configuration with priority: defaults < file < env.
// Flags are applied by the caller on the returned Config.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()
	cfg.Wallet.MnemonicFile = paths.MnemonicPath(l.dataDir)
	cfg.History.Path = paths.HistoryPath(l.dataDir)

	fileCfg, err := l.loadFile()
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		if err := mergeFileConfig(cfg, fileCfg); err != nil {
			return nil, err
		}
	}

	applyEnvVars(cfg)

	return cfg, nil
}

// Path returns the config file path the loader reads.
func (l *Loader) Path() string {
	if l.configPath != "" {
		return l.configPath
	}
	return paths.ConfigPath(l.dataDir)
}

// loadFile loads and parses the config file.
// Returns nil if no config file exists (not an error).
func (l *Loader) loadFile() (*FileConfig, error) {
	configPath := l.Path()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No config file is OK
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg FileConfig
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("invalid TOML in %s: %w", configPath, err)
	}

	return &fileCfg, nil
}

// mergeFileConfig merges non-nil FileConfig values into Config.
func mergeFileConfig(cfg *Config, file *FileConfig) error {
	// Node
	if file.Node.APIURL != nil {
		cfg.Node.APIURL = *file.Node.APIURL
	}
	if file.Node.Timeout != nil {
		d, err := time.ParseDuration(*file.Node.Timeout)
		if err != nil {
			return fmt.Errorf("invalid node.timeout %q: %w", *file.Node.Timeout, err)
		}
		cfg.Node.Timeout = d
	}

	// Wallet
	if file.Wallet.MnemonicFile != nil {
		cfg.Wallet.MnemonicFile = expandHome(*file.Wallet.MnemonicFile)
	}
	if file.Wallet.Bech32Prefix != nil {
		cfg.Wallet.Bech32Prefix = *file.Wallet.Bech32Prefix
	}
	if file.Wallet.HDPath != nil {
		cfg.Wallet.HDPath = *file.Wallet.HDPath
	}

	// Tx
	if file.Tx.GasLimit != nil {
		cfg.Tx.GasLimit = *file.Tx.GasLimit
	}
	if file.Tx.GasPrice != nil {
		cfg.Tx.GasPrice = *file.Tx.GasPrice
	}
	if file.Tx.GasAdjustment != nil {
		cfg.Tx.GasAdjustment = *file.Tx.GasAdjustment
	}
	if file.Tx.Memo != nil {
		cfg.Tx.Memo = *file.Tx.Memo
	}
	if file.Tx.AllowLeadingZeroAmounts != nil {
		cfg.Tx.AllowLeadingZeroAmounts = *file.Tx.AllowLeadingZeroAmounts
	}

	// Poll
	if file.Poll.Attempts != nil {
		cfg.Poll.Attempts = *file.Poll.Attempts
	}
	if file.Poll.Interval != nil {
		d, err := time.ParseDuration(*file.Poll.Interval)
		if err != nil {
			return fmt.Errorf("invalid poll.interval %q: %w", *file.Poll.Interval, err)
		}
		cfg.Poll.Interval = d
	}

	// History
	if file.History.Enabled != nil {
		cfg.History.Enabled = *file.History.Enabled
	}
	if file.History.Path != nil {
		cfg.History.Path = expandHome(*file.History.Path)
	}

	// Output
	if file.Output.Format != nil {
		cfg.Output.Format = *file.Output.Format
	}
	if file.Output.NoColor != nil {
		cfg.Output.NoColor = *file.Output.NoColor
	}

	return nil
}

// applyEnvVars applies environment variable overrides to config.
func applyEnvVars(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.Node.APIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Node.Timeout = d
		}
	}
	if v := os.Getenv(EnvMnemonic); v != "" {
		cfg.Wallet.Mnemonic = v
	}
	if v := os.Getenv(EnvMnemonicFile); v != "" {
		cfg.Wallet.MnemonicFile = expandHome(v)
	}
	if v := os.Getenv(EnvBech32Prefix); v != "" {
		cfg.Wallet.Bech32Prefix = v
	}
	if v := os.Getenv(EnvGasLimit); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Tx.GasLimit = n
		}
	}
	if v := os.Getenv(EnvGasPrice); v != "" {
		cfg.Tx.GasPrice = v
	}
	if v := os.Getenv(EnvGasAdjustment); v != "" {
		cfg.Tx.GasAdjustment = v
	}
	if v := os.Getenv(EnvPollAttempts); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Poll.Attempts = i
		}
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Poll.Interval = d
		}
	}
	if v := os.Getenv(EnvHistory); v != "" {
		cfg.History.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv(EnvNoColor); v != "" {
		cfg.Output.NoColor = true
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
