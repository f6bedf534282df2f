// cmd/dwapp/tx.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/altuslabsxyz/dwapp/internal/helpers"
	"github.com/altuslabsxyz/dwapp/pkg/network"
	"github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
)

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Short:   "Build, sign and submit transactions",
		Aliases: []string{"transaction"},
	}

	cmd.AddCommand(
		newTxSendCmd(a),
		newTxSubmitCmd(a),
		newTxBankSendCmd(a),
		newTxTypesCmd(a),
	)

	return cmd
}

func newTxSendCmd(a *app) *cobra.Command {
	var (
		flags    txFlags
		msgsFile string
	)

	cmd := &cobra.Command{
		Use:   "send --msgs <file>",
		Short: "Submit raw messages from a JSON file",
		Long: `Submit the messages in a JSON file. The file holds either an array of
messages or an object with a "msgs" array. Every message carries its type url
in "@type". Use "-" to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := loadMsgs(cmd.InOrStdin(), msgsFile)
			if err != nil {
				return err
			}
			return a.submitMsgs(cmd, &flags, msgs)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&msgsFile, "msgs", "", "JSON file with the messages (required)")
	cmd.MarkFlagRequired("msgs")

	return cmd
}

func newTxSubmitCmd(a *app) *cobra.Command {
	var (
		flags   txFlags
		txType  string
		payload string
	)

	cmd := &cobra.Command{
		Use:   "submit --type <type> --payload <json>",
		Short: "Submit a typed transaction",
		Long: `Build a single message from a transaction type and a JSON payload, then
submit it. The payload may be inline JSON or @file. See 'dwapp tx types'.`,
		Example: `  dwapp tx submit --type storage/set --payload '{"index":"profile","data":"{}"}'
  dwapp tx submit --type nameservice/commit --payload '{"name":"alice.dys","salt":"s","valuation":"100dys"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := a.getWallet()
			if err != nil {
				return err
			}

			raw, err := readPayload(payload)
			if err != nil {
				return err
			}

			msg, err := cosmos.BuildMessage(network.TxType(txType), wallet.Address(), raw)
			if err != nil {
				return err
			}

			return a.submitMsgs(cmd, &flags, []network.Msg{msg})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&txType, "type", "", "Transaction type (required)")
	cmd.Flags().StringVar(&payload, "payload", "{}", "JSON payload or @file")
	cmd.MarkFlagRequired("type")

	return cmd
}

func newTxBankSendCmd(a *app) *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:     "bank-send <to-address> <amount>",
		Short:   "Send tokens",
		Example: "  dwapp tx bank-send dys1... 1000dys",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := a.getWallet()
			if err != nil {
				return err
			}

			to := args[0]
			if err := cosmos.ValidateAddress(to, a.cfg.Wallet.Bech32Prefix); err != nil {
				return fmt.Errorf("invalid recipient: %w", err)
			}
			amount, err := cosmos.ParseAmount(args[1])
			if err != nil {
				return err
			}

			msg := cosmos.NewMsgSend(wallet.Address(), to, amount)
			return a.submitMsgs(cmd, &flags, []network.Msg{msg})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newTxTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the transaction types accepted by 'tx submit'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := network.SupportedTxTypes()
			return a.render(types, func() {
				w := tabwriter.NewWriter(a.out.Writer(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TYPE")
				for _, t := range types {
					fmt.Fprintln(w, t)
				}
				w.Flush()
			})
		},
	}
}

// loadMsgs reads a message list from a JSON or YAML file, or JSON from
// stdin for "-". Both a bare list and {"msgs": [...]} are accepted.
func loadMsgs(stdin io.Reader, path string) ([]network.Msg, error) {
	data, err := helpers.ReadInput(path, stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	var doc any
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		if doc, err = decodeYAML(data); err != nil {
			return nil, fmt.Errorf("invalid messages YAML: %w", err)
		}
	} else {
		// Numbers stay json.Number so large integers survive untouched.
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid messages JSON: %w", err)
		}
	}

	list := doc
	if wrapper, ok := doc.(map[string]any); ok {
		list = wrapper["msgs"]
	}
	if list == nil {
		return nil, fmt.Errorf("no messages in %s", path)
	}
	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of messages or {\"msgs\": [...]} in %s", path)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no messages in %s", path)
	}

	msgs := make([]network.Msg, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("message %d is not an object", i)
		}
		msgs[i] = network.Msg(m)
		if msgs[i].TypeURL() == "" {
			return nil, fmt.Errorf("message %d has no \"@type\"", i)
		}
	}
	return msgs, nil
}

// decodeYAML decodes a YAML document into the shapes the JSON decoder
// yields. Plain numbers keep their literal text: a valid JSON number
// becomes json.Number, anything else (0050, 0x1f, .5) stays a string, so
// leading-zero amounts reach the guard as written instead of as octal.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return yamlValue(&root)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int", "!!float":
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		return n.Value, nil
	default:
		return n.Value, nil
	}
}

// readPayload returns inline JSON or the contents of @file.
func readPayload(payload string) (json.RawMessage, error) {
	if strings.HasPrefix(payload, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(payload, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		payload = string(data)
	}
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	return json.RawMessage(payload), nil
}
