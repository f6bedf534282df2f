// internal/config/file.go
package config

// FileConfig represents the raw dwapp.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	Node    FileNodeConfig    `toml:"node"`
	Wallet  FileWalletConfig  `toml:"wallet"`
	Tx      FileTxConfig      `toml:"tx"`
	Poll    FilePollConfig    `toml:"poll"`
	History FileHistoryConfig `toml:"history"`
	Output  FileOutputConfig  `toml:"output"`
}

// FileNodeConfig is the TOML representation of NodeConfig.
// Uses a string for the timeout since TOML cannot decode directly to time.Duration.
type FileNodeConfig struct {
	APIURL  *string `toml:"api_url"`
	Timeout *string `toml:"timeout"`
}

// FileWalletConfig is the TOML representation of WalletConfig.
type FileWalletConfig struct {
	MnemonicFile *string `toml:"mnemonic_file"`
	Bech32Prefix *string `toml:"bech32_prefix"`
	HDPath       *string `toml:"hd_path"`
}

// FileTxConfig is the TOML representation of TxConfig.
type FileTxConfig struct {
	GasLimit                *uint64 `toml:"gas_limit"`
	GasPrice                *string `toml:"gas_price"`
	GasAdjustment           *string `toml:"gas_adjustment"`
	Memo                    *string `toml:"memo"`
	AllowLeadingZeroAmounts *bool   `toml:"allow_leading_zero_amounts"`
}

// FilePollConfig is the TOML representation of PollConfig.
type FilePollConfig struct {
	Attempts *int    `toml:"attempts"`
	Interval *string `toml:"interval"`
}

// FileHistoryConfig is the TOML representation of HistoryConfig.
type FileHistoryConfig struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

// FileOutputConfig is the TOML representation of OutputConfig.
type FileOutputConfig struct {
	Format  *string `toml:"format"`
	NoColor *bool   `toml:"no_color"`
}

// IsEmpty returns true if no values are set in the FileConfig.
func (f *FileConfig) IsEmpty() bool {
	return f.Node.APIURL == nil &&
		f.Node.Timeout == nil &&
		f.Wallet.MnemonicFile == nil &&
		f.Wallet.Bech32Prefix == nil &&
		f.Wallet.HDPath == nil &&
		f.Tx.GasLimit == nil &&
		f.Tx.GasPrice == nil &&
		f.Tx.GasAdjustment == nil &&
		f.Tx.Memo == nil &&
		f.Tx.AllowLeadingZeroAmounts == nil &&
		f.Poll.Attempts == nil &&
		f.Poll.Interval == nil &&
		f.History.Enabled == nil &&
		f.History.Path == nil &&
		f.Output.Format == nil &&
		f.Output.NoColor == nil
}
