// cmd/dwapp/submit.go
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/interactive"
	"github.com/altuslabsxyz/dwapp/internal/output"
	"github.com/altuslabsxyz/dwapp/pkg/network"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

// txFlags are the submission flags shared by every sending command.
type txFlags struct {
	simulate         bool
	memo             string
	gas              uint64
	gasPrice         string
	gasAdjustment    string
	yes              bool
	allowLeadingZero bool
}

func (f *txFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.simulate, "simulate", false, "Dry-run the transaction instead of broadcasting it")
	flags.StringVar(&f.memo, "memo", "", "Transaction memo")
	flags.Uint64Var(&f.gas, "gas", 0, "Gas limit (0 = estimate by simulation)")
	flags.StringVar(&f.gasPrice, "gas-price", "", "Gas price, e.g. 0.025dys")
	flags.StringVar(&f.gasAdjustment, "gas-adjustment", "", "Multiplier applied to simulated gas")
	flags.BoolVarP(&f.yes, "yes", "y", false, "Skip the broadcast confirmation prompt")
	flags.BoolVar(&f.allowLeadingZero, "allow-leading-zero-amounts", false, "Only warn about amounts with leading zeros")
}

// resolve fills unset flags from the config.
func (f *txFlags) resolve(cmd *cobra.Command, a *app) {
	flags := cmd.Flags()
	if !flags.Changed("memo") {
		f.memo = a.cfg.Tx.Memo
	}
	if !flags.Changed("gas") {
		f.gas = a.cfg.Tx.GasLimit
	}
	if !flags.Changed("gas-price") {
		f.gasPrice = a.cfg.Tx.GasPrice
	}
	if !flags.Changed("gas-adjustment") {
		f.gasAdjustment = a.cfg.Tx.GasAdjustment
	}
	if !flags.Changed("allow-leading-zero-amounts") {
		f.allowLeadingZero = a.cfg.Tx.AllowLeadingZeroAmounts
	}
}

func (f *txFlags) gasSettings() cosmos.GasSettings {
	return cosmos.GasSettings{Price: f.gasPrice, Adjustment: f.gasAdjustment}
}

// sendOptions builds the library options, including the fee. Broadcasts
// without an explicit gas limit are estimated first.
func (a *app) sendOptions(ctx context.Context, f *txFlags, wallet network.Wallet, msgs []network.Msg, progress *output.Progress) (network.SendOptions, error) {
	opts := network.SendOptions{
		Memo:                    f.memo,
		Simulate:                f.simulate,
		AllowLeadingZeroAmounts: f.allowLeadingZero,
	}

	if !f.simulate && !f.yes {
		opts.Confirm = a.confirmer
		if opts.Confirm == nil {
			opts.Confirm = interactive.NewConfirmer(nil)
		}
	}

	switch {
	case f.gas > 0:
		fee, err := cosmos.BuildFee(f.gas, f.gasPrice)
		if err != nil {
			return opts, err
		}
		opts.Fee = &fee
	case f.simulate:
		// Dry runs use the default fee.
	default:
		client, err := a.getClient()
		if err != nil {
			return opts, err
		}
		progress.Stage("Estimating gas")
		limit, err := client.EstimateGas(ctx, wallet, msgs, f.gasSettings(), opts)
		if err != nil {
			return opts, err
		}
		a.out.Debug("estimated gas limit: %d", limit)
		fee, err := cosmos.BuildFee(limit, f.gasPrice)
		if err != nil {
			return opts, err
		}
		opts.Fee = &fee
	}

	return opts, nil
}

func newProgress(a *app, f *txFlags) *output.Progress {
	total := 1
	if f.gas == 0 && !f.simulate {
		total = 2
	}
	p := output.NewProgress(total)
	p.SetWriter(a.stderr())
	p.SetJSONMode(a.format.Machine())
	return p
}

func stageLabel(f *txFlags) string {
	if f.simulate {
		return "Simulating"
	}
	return "Broadcasting"
}

// spin shows a spinner on interactive terminals until the returned func is
// called. The confirmation prompt runs inside Send, so callers pass the
// options and no spinner is drawn over a prompt.
func (a *app) spin(message string, opts network.SendOptions) func() {
	disabled := opts.Confirm != nil || a.format.Machine() || !interactive.IsTerminalInteractive()
	spinner := output.NewStatusSpinner(disabled)
	spinner.SetWriter(a.stderr())
	spinner.Start(message)
	return spinner.Stop
}

// submitMsgs runs the full lifecycle for msgs and prints the result.
func (a *app) submitMsgs(cmd *cobra.Command, f *txFlags, msgs []network.Msg) error {
	ctx := cmd.Context()
	f.resolve(cmd, a)

	client, err := a.getClient()
	if err != nil {
		return err
	}
	wallet, err := a.getWallet()
	if err != nil {
		return err
	}

	progress := newProgress(a, f)
	opts, err := a.sendOptions(ctx, f, wallet, msgs, progress)
	if err != nil {
		return describeSendError(err)
	}

	progress.Stage(stageLabel(f))
	stop := a.spin("waiting for the node", opts)
	res, err := client.Send(ctx, wallet, msgs, opts)
	stop()
	if err != nil {
		return describeSendError(err)
	}

	a.record(ctx, wallet.Address(), opts.Memo, msgs, res)

	if err := a.render(res, func() { a.out.PrintSubmission(res) }); err != nil {
		return err
	}
	if !res.Success {
		return errUnsuccessful
	}
	return nil
}

// describeSendError adds guidance to the errors users can act on.
func describeSendError(err error) error {
	if errors.Is(err, network.ErrCancelled) {
		return &exitError{code: 1, err: fmt.Errorf("transaction cancelled, nothing was signed")}
	}
	if errors.Is(err, interactive.ErrNotInteractive) {
		return err
	}

	var lz *network.LeadingZeroAmountsError
	if errors.As(err, &lz) {
		lines := make([]string, len(lz.Violations))
		for i, v := range lz.Violations {
			lines[i] = "  - " + v.String()
		}
		return fmt.Errorf("amounts with leading zeros:\n%s\nfix them or pass --allow-leading-zero-amounts", strings.Join(lines, "\n"))
	}

	if network.IsNetworkError(err) {
		return fmt.Errorf("%w\nis the node reachable? (--api-url)", err)
	}
	return err
}
