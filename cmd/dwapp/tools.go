// cmd/dwapp/tools.go
package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/output"
	"github.com/altuslabsxyz/dwapp/internal/tui"
	"github.com/altuslabsxyz/dwapp/pkg/network"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

func newCheckAmountsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-amounts <msgs-file>",
		Short: "Report amounts written with leading zeros",
		Long: `Scan the messages in a JSON file for "amount" values with leading zeros,
such as "0100". Exits with status 2 when any are found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := loadMsgs(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			violations := cosmos.CheckMsgs(msgs)
			if violations == nil {
				violations = []network.AmountViolation{}
			}

			err = a.render(violations, func() {
				if len(violations) == 0 {
					a.out.Success("No leading-zero amounts in %d message(s)", len(msgs))
					return
				}
				lines := make([]string, len(violations))
				for i, v := range violations {
					lines[i] = "- " + v.String()
				}
				title := fmt.Sprintf("%d leading-zero amount(s) found", len(violations))
				a.out.Println("%s", tui.Box(title, strings.Join(lines, "\n"), tui.WarningBoxStyle))
			})
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				return errUnsuccessful
			}
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <base64-tx>",
		Short: "Decode signed transaction bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := decodeBase64Tx(args[0])
			if err != nil {
				return err
			}
			return a.renderDecoded(decoded)
		},
	}
}

func newSignDataCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "sign-data <data>",
		Short: "Sign arbitrary data off-chain",
		Long: `Sign data inside an off-chain MsgSignArbitraryData transaction. Nothing is
broadcast. The signed transaction is printed as base64 together with its
decoded form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.getClient()
			if err != nil {
				return err
			}
			wallet, err := a.getWallet()
			if err != nil {
				return err
			}

			txB64, err := client.SignArbitraryData(cmd.Context(), wallet, args[0])
			if err != nil {
				return describeSendError(err)
			}
			if raw {
				a.out.Println("%s", txB64)
				return nil
			}

			decoded, err := decodeBase64Tx(txB64)
			if err != nil {
				return err
			}

			view := signedData{
				Signer:    wallet.Address(),
				Data:      args[0],
				TxBytes:   txB64,
				DecodedTx: decoded,
			}
			return a.render(view, func() {
				a.out.Field("Signer", view.Signer)
				a.out.Field("Data", view.Data)
				if len(decoded.Signatures) > 0 {
					a.out.Field("Signature", decoded.Signatures[0])
				}
				a.out.Println("")
				a.out.Bold("Tx bytes:")
				a.out.Println("%s", txB64)
				if a.out.IsVerbose() {
					a.out.Println("")
					_ = output.Render(a.out.Writer(), output.FormatYAML, decoded)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the base64 tx bytes")

	return cmd
}

type signedData struct {
	Signer    string             `json:"signer" yaml:"signer"`
	Data      string             `json:"data" yaml:"data"`
	TxBytes   string             `json:"tx_bytes" yaml:"tx_bytes"`
	DecodedTx *network.DecodedTx `json:"decoded" yaml:"decoded"`
}

func decodeBase64Tx(s string) (*network.DecodedTx, error) {
	bz, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return cosmos.DecodeTxRaw(bz)
}

// renderDecoded prints a decoded tx. Text mode uses YAML since the
// structure is nested.
func (a *app) renderDecoded(decoded *network.DecodedTx) error {
	format := a.format
	if !format.Machine() {
		format = output.FormatYAML
	}
	return output.Render(a.out.Writer(), format, decoded)
}
