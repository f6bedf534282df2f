// cmd/dwapp/query.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

func newAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account [address]",
		Short: "Show chain id, account number and sequence",
		Long:  "Show the signing identity of an address. Defaults to the local key's address.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var address string
			if len(args) == 1 {
				address = args[0]
				if err := cosmos.ValidateAddress(address, a.cfg.Wallet.Bech32Prefix); err != nil {
					return err
				}
			} else {
				wallet, err := a.getWallet()
				if err != nil {
					return err
				}
				address = wallet.Address()
			}

			client, err := a.getClient()
			if err != nil {
				return err
			}
			identity, err := client.ResolveAccount(cmd.Context(), address)
			if err != nil {
				return describeSendError(err)
			}

			return a.render(identity, func() {
				a.out.Field("Address", identity.Address)
				a.out.Field("Chain ID", identity.ChainID)
				a.out.Field("Account number", identity.AccountNumber)
				a.out.Field("Sequence", identity.Sequence)
			})
		},
	}
}

func newNodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Query the configured node",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the node's chain id and software versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.getClient()
			if err != nil {
				return err
			}
			info, err := client.NodeInfo(cmd.Context())
			if err != nil {
				return describeSendError(err)
			}

			view := struct {
				cosmos.NodeInfo `yaml:",inline"`
				APIURL            string `json:"api_url" yaml:"api_url"`
				UnorderedTx       bool   `json:"unordered_tx" yaml:"unordered_tx"`
			}{*info, client.APIURL(), info.SupportsUnordered()}

			return a.render(view, func() {
				a.out.Field("Endpoint", view.APIURL)
				a.out.Field("Chain ID", info.ChainID)
				a.out.Field("Moniker", info.Moniker)
				a.out.Field("App", info.AppName+" "+info.AppVersion)
				a.out.Field("Cosmos SDK", info.SDKVersion)
				a.out.Field("Unordered tx", view.UnorderedTx)
			})
		},
	})

	return cmd
}
