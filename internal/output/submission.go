package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// FailureInfo contains what a user needs to act on a failed submission.
type FailureInfo struct {
	Kind           network.SubmissionKind
	Failure        network.FailureKind
	Code           uint32
	TxHash         string
	RawLog         string
	MissingActions []string
	ScriptError    interface{} // decoded script error payload, if any
}

// NewFailureInfo extracts the failure details of a result.
func NewFailureInfo(res *network.SubmissionResult) *FailureInfo {
	return &FailureInfo{
		Kind:           res.Kind,
		Failure:        res.Failure,
		Code:           res.Code,
		TxHash:         res.TxHash,
		RawLog:         res.RawLog,
		MissingActions: res.MissingActions,
	}
}

// Hint returns a one-line suggestion for the failure category.
func (f *FailureInfo) Hint() string {
	switch f.Failure {
	case network.FailurePollingTimeout:
		return "The transaction may still be committed later. Query the hash before resubmitting."
	case network.FailureTransport:
		return "Check that the node REST endpoint is reachable (--api-url)."
	case network.FailureSimulationRejected:
		return "The dry run was rejected; nothing was broadcast."
	case network.FailurePartialExecution:
		return "Some messages produced no action event. Inspect the events before relying on the result."
	case network.FailureMalformedResponse:
		return "The node returned an unexpected response shape."
	default:
		return ""
	}
}

// PrintSubmission prints a submission result in human readable form.
func (l *Logger) PrintSubmission(res *network.SubmissionResult) {
	if l.jsonMode || res == nil {
		return
	}

	if res.Success {
		if res.Kind == network.KindSimulate {
			l.Success("Simulation succeeded")
		} else {
			l.Success("Transaction committed")
		}
	} else {
		label := "Transaction"
		if res.Kind == network.KindSimulate {
			label = "Simulation"
		}
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(l.out, "✗ %s failed\n", label)
	}

	if res.TxHash != "" {
		l.Field("Tx hash", res.TxHash)
	}
	l.Field("Code", res.Code)
	l.Field("Gas used", res.GasUsed)
	if res.SubmissionID != "" {
		l.Debug("submission id: %s", res.SubmissionID)
	}
	if res.Success && res.RawLog != "" {
		l.Field("Log", res.RawLog)
	}

	if !res.Success {
		l.PrintFailure(NewFailureInfo(res))
	}
}

// PrintFailure prints detailed failure information with visual separators.
func (l *Logger) PrintFailure(info *FailureInfo) {
	if l.jsonMode || info == nil {
		return
	}

	red := color.New(color.FgRed)
	fmt.Fprintln(l.errOut)
	fmt.Fprintln(l.errOut, RedSeparator())
	red.Fprintf(l.errOut, "Failure: %s (code %d)\n", info.Failure, info.Code)
	if info.TxHash != "" {
		fmt.Fprintf(l.errOut, "Tx hash: %s\n", info.TxHash)
	}
	if info.RawLog != "" {
		fmt.Fprintf(l.errOut, "Log: %s\n", info.RawLog)
	}
	if len(info.MissingActions) > 0 {
		fmt.Fprintf(l.errOut, "Missing actions: %s\n", strings.Join(info.MissingActions, ", "))
	}
	if info.ScriptError != nil {
		fmt.Fprintf(l.errOut, "Script error: %v\n", info.ScriptError)
	}
	fmt.Fprintln(l.errOut, RedSeparator())

	if hint := info.Hint(); hint != "" {
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(l.errOut, "%s\n", hint)
	}
}
