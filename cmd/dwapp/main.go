// cmd/dwapp/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and maps the outcome to a process exit code:
// 0 success, 1 error, 2 a submission that completed without success.
func run(args []string) int {
	a := newApp()
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	a.close()
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		if exit.err != nil {
			a.logger().Error("%v", exit.err)
		}
		return exit.code
	}

	a.logger().Error("%v", err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dwapp",
		Short: "Dyson transaction lifecycle CLI",
		Long: `dwapp builds, signs and submits transactions to a Dyson (Cosmos SDK) node
through its REST API, and reports exactly one outcome per submission.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		version.NewCmd("dwapp"),
		newKeysCmd(a),
		newAccountCmd(a),
		newNodeCmd(a),
		newTxCmd(a),
		newScriptCmd(a),
		newCheckAmountsCmd(a),
		newDecodeCmd(a),
		newSignDataCmd(a),
		newHistoryCmd(a),
	)

	return rootCmd
}

// exitError carries a specific exit code through cobra.
type exitError struct {
	code int
	err  error // printed when non-nil
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// errUnsuccessful signals a submission that completed but did not succeed.
// The result has already been printed.
var errUnsuccessful = &exitError{code: 2}
