// cmd/dwapp/script.go
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/output"
	"github.com/altuslabsxyz/dwapp/pkg/network"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

func newScriptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Execute on-chain scripts",
	}
	cmd.AddCommand(newScriptRunCmd(a))
	return cmd
}

func newScriptRunCmd(a *app) *cobra.Command {
	var (
		flags    txFlags
		call     cosmos.ScriptCall
		attached string
	)

	cmd := &cobra.Command{
		Use:   "run <script-address>",
		Short: "Call a script function and print its response",
		Example: `  dwapp script run dys1... --function greet --args '["world"]'
  dwapp script run dys1... --function greet --simulate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags.resolve(cmd, a)

			call.ScriptAddress = args[0]
			if err := cosmos.ValidateAddress(call.ScriptAddress, a.cfg.Wallet.Bech32Prefix); err != nil {
				return fmt.Errorf("invalid script address: %w", err)
			}
			if attached != "" {
				msgs, err := loadMsgs(cmd.InOrStdin(), attached)
				if err != nil {
					return err
				}
				call.AttachedMessages = msgs
			}

			client, err := a.getClient()
			if err != nil {
				return err
			}
			wallet, err := a.getWallet()
			if err != nil {
				return err
			}
			call.ExecutorAddress = wallet.Address()

			msg, err := cosmos.NewMsgExec(call)
			if err != nil {
				return err
			}
			msgs := []network.Msg{msg}

			progress := newProgress(a, &flags)
			opts, err := a.sendOptions(ctx, &flags, wallet, msgs, progress)
			if err != nil {
				return describeSendError(err)
			}

			progress.Stage(stageLabel(&flags))
			stop := a.spin("waiting for the node", opts)
			res, err := client.RunScript(ctx, wallet, call, opts)
			stop()
			if err != nil {
				return describeSendError(err)
			}

			a.record(ctx, wallet.Address(), opts.Memo, msgs, res.Submission)

			if err := a.render(res, func() { a.printScriptResult(res) }); err != nil {
				return err
			}
			if !res.Success {
				return errUnsuccessful
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&call.FunctionName, "function", "", "Function to call (required)")
	cmd.Flags().StringVar(&call.Args, "args", "", "Positional arguments as a JSON array")
	cmd.Flags().StringVar(&call.Kwargs, "kwargs", "", "Keyword arguments as a JSON object")
	cmd.Flags().StringVar(&call.ExtraCode, "extra-code", "", "Code evaluated before the call")
	cmd.Flags().StringVar(&attached, "attach", "", "JSON file with messages to attach")
	cmd.MarkFlagRequired("function")

	return cmd
}

func (a *app) printScriptResult(res *cosmos.ScriptResult) {
	sub := res.Submission
	if res.Success {
		a.out.PrintSubmission(sub)
		a.out.Println("")
		a.out.Bold("Script response:")
		a.out.Println("%s", prettyJSON(res.ScriptResponse))
		return
	}

	// Failure details go through PrintFailure so the script error is shown
	// alongside the node's log.
	a.out.Println("✗ Script call failed")
	if sub.TxHash != "" {
		a.out.Field("Tx hash", sub.TxHash)
	}
	a.out.Field("Code", sub.Code)
	info := output.NewFailureInfo(sub)
	info.ScriptError = prettyJSON(res.ScriptResponse)
	a.out.PrintFailure(info)
}

func prettyJSON(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(string); ok {
		return s
	}
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bz)
}
