// cmd/dwapp/wiring.go
// This file assembles configuration, the chain client, the wallet and the
// history journal for the commands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/config"
	"github.com/altuslabsxyz/dwapp/internal/history"
	"github.com/altuslabsxyz/dwapp/internal/output"
	"github.com/altuslabsxyz/dwapp/pkg/network"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	// Global flags
	home       string
	configPath string
	apiURL     string
	outputFlag string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	out    *output.Logger
	format output.Format
	libLog log.Logger

	client  *cosmos.Client
	wallet  *cosmos.LocalWallet
	history history.Store

	// Overridable for tests.
	clientOpts  []cosmos.Option
	confirmer   network.Confirmer
	openHistory func(path string) (history.Store, error)
}

func newApp() *app {
	return &app{
		openHistory: func(path string) (history.Store, error) {
			return history.NewBoltStore(path)
		},
	}
}

func (a *app) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.home, "home", config.DefaultDataDir(), "Data directory for config, key and history")
	flags.StringVar(&a.configPath, "config", "", "Config file path (default: <home>/"+config.ConfigFileName+")")
	flags.StringVar(&a.apiURL, "api-url", "", "Node REST endpoint (overrides config)")
	flags.StringVarP(&a.outputFlag, "output", "o", "", "Output format: text, json or yaml")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")
}

// setup loads configuration with priority defaults < file < env < flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(a.home, a.configPath).Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.Node.APIURL = a.apiURL
	}
	if flags.Changed("output") {
		cfg.Output.Format = strings.ToLower(a.outputFlag)
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = a.noColor
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.format, err = output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	a.out = output.NewLoggerWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a.out.SetNoColor(cfg.Output.NoColor)
	a.out.SetVerbose(a.verbose)
	a.out.SetJSONMode(a.format.Machine())

	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	logOpts := []log.Option{log.LevelOption(level), log.ColorOption(!cfg.Output.NoColor)}
	if a.format.Machine() {
		logOpts = append(logOpts, log.OutputJSONOption())
	}
	a.libLog = log.NewLogger(cmd.ErrOrStderr(), logOpts...)

	a.out.Debug("config: %s", config.NewLoader(a.home, a.configPath).Path())
	a.out.Debug("node: %s", cfg.Node.APIURL)
	return nil
}

// logger returns the CLI logger, falling back to the default before setup.
func (a *app) logger() *output.Logger {
	if a.out == nil {
		return output.DefaultLogger
	}
	return a.out
}

func (a *app) getClient() (*cosmos.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	opts := append([]cosmos.Option{cosmos.WithLogger(a.libLog)}, a.clientOpts...)
	client, err := cosmos.NewClient(a.cfg.ClientConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	a.client = client
	return client, nil
}

func (a *app) getWallet() (*cosmos.LocalWallet, error) {
	if a.wallet != nil {
		return a.wallet, nil
	}

	mnemonic := a.cfg.Wallet.Mnemonic
	if mnemonic == "" {
		data, err := os.ReadFile(a.cfg.Wallet.MnemonicFile)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("no key found at %s: run 'dwapp keys new' or set %s", a.cfg.Wallet.MnemonicFile, config.EnvMnemonic)
			}
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		mnemonic = string(data)
	}

	wallet, err := cosmos.NewLocalWallet(mnemonic, a.cfg.Wallet.Bech32Prefix, a.cfg.Wallet.HDPath)
	if err != nil {
		return nil, err
	}
	a.wallet = wallet
	return wallet, nil
}

// getHistory returns the journal, or nil when history is disabled.
func (a *app) getHistory() (history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	if a.history != nil {
		return a.history, nil
	}

	store, err := a.openHistory(a.cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	a.history = store
	return store, nil
}

// record journals a finished submission. Journal failures only warn since
// the submission itself already happened.
func (a *app) record(ctx context.Context, sender, memo string, msgs []network.Msg, res *network.SubmissionResult) {
	store, err := a.getHistory()
	if err != nil {
		a.out.Warn("%v", err)
		return
	}
	if store == nil || res == nil {
		return
	}

	rec := history.NewRecord(sender, res.ChainID, memo, msgs, res)
	if err := store.Append(ctx, rec); err != nil {
		a.out.Warn("failed to record submission in history: %v", err)
		return
	}
	a.out.Debug("recorded as %s", rec.ID)
}

// render writes v in the selected machine format, or calls text otherwise.
func (a *app) render(v interface{}, text func()) error {
	if a.format.Machine() {
		return output.Render(a.out.Writer(), a.format, v)
	}
	text()
	return nil
}

func (a *app) stderr() io.Writer {
	return a.out.ErrWriter()
}

func (a *app) close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger().Warn("failed to close history: %v", err)
		}
	}
}
