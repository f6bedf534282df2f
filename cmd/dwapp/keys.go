// cmd/dwapp/keys.go
package main

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/helpers"
	"github.com/altuslabsxyz/dwapp/internal/interactive"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

// keyInfo is the public view of the local key.
type keyInfo struct {
	Address  string `json:"address" yaml:"address"`
	PubKey   string `json:"pubkey" yaml:"pubkey"`
	KeyFile  string `json:"key_file,omitempty" yaml:"key_file,omitempty"`
	Mnemonic string `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
}

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the local signing key",
	}

	cmd.AddCommand(
		newKeysNewCmd(a),
		newKeysImportCmd(a),
		newKeysShowCmd(a),
	)

	return cmd
}

func newKeysNewCmd(a *app) *cobra.Command {
	var (
		force        bool
		showMnemonic bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new 24-word mnemonic and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic, err := cosmos.NewMnemonic()
			if err != nil {
				return err
			}

			info, err := a.storeMnemonic(mnemonic, force)
			if err != nil {
				return err
			}
			if showMnemonic {
				info.Mnemonic = mnemonic
			}

			return a.render(info, func() {
				a.out.Success("Key created")
				a.printKey(info)
				if showMnemonic {
					a.out.Println("")
					a.out.Bold("Mnemonic (write it down, it is the only way to recover this key):")
					a.out.Println("%s", mnemonic)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key without asking")
	cmd.Flags().BoolVar(&showMnemonic, "show-mnemonic", false, "Print the generated mnemonic")

	return cmd
}

func newKeysImportCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a mnemonic read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.format.Machine() && interactive.IsTerminalInteractive() {
				fmt.Fprint(a.stderr(), "Enter mnemonic: ")
			}
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(line) == "" {
				return fmt.Errorf("failed to read mnemonic: %w", err)
			}

			info, err := a.storeMnemonic(line, force)
			if err != nil {
				return err
			}

			return a.render(info, func() {
				a.out.Success("Key imported")
				a.printKey(info)
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key without asking")

	return cmd
}

func newKeysShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the address and public key of the local key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := a.getWallet()
			if err != nil {
				return err
			}

			info := keyInfo{
				Address: wallet.Address(),
				PubKey:  base64.StdEncoding.EncodeToString(wallet.PubKey()),
			}
			if a.cfg.Wallet.Mnemonic == "" {
				info.KeyFile = a.cfg.Wallet.MnemonicFile
			}

			return a.render(info, func() { a.printKey(info) })
		},
	}
}

// storeMnemonic validates mnemonic and writes it to the key file.
func (a *app) storeMnemonic(mnemonic string, force bool) (keyInfo, error) {
	wallet, err := cosmos.NewLocalWallet(mnemonic, a.cfg.Wallet.Bech32Prefix, a.cfg.Wallet.HDPath)
	if err != nil {
		return keyInfo{}, err
	}

	path := a.cfg.Wallet.MnemonicFile
	if helpers.FileExists(path) && !force {
		if !interactive.IsTerminalInteractive() {
			return keyInfo{}, fmt.Errorf("key file %s already exists (use --force to overwrite)", path)
		}
		ok, err := interactive.ConfirmYesNo(fmt.Sprintf("Overwrite existing key at %s", path))
		if err != nil {
			return keyInfo{}, err
		}
		if !ok {
			return keyInfo{}, fmt.Errorf("keeping existing key")
		}
	}

	normalized := strings.Join(strings.Fields(mnemonic), " ")
	if err := helpers.WriteSecretFile(path, []byte(normalized+"\n")); err != nil {
		return keyInfo{}, err
	}

	a.wallet = wallet
	return keyInfo{
		Address: wallet.Address(),
		PubKey:  base64.StdEncoding.EncodeToString(wallet.PubKey()),
		KeyFile: path,
	}, nil
}

func (a *app) printKey(info keyInfo) {
	a.out.Field("Address", info.Address)
	a.out.Field("Public key", info.PubKey)
	if info.KeyFile != "" {
		a.out.Field("Key file", info.KeyFile)
	}
}
