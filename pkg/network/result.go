package network

import "encoding/json"

// SubmissionKind says which endpoint a submission went to.
type SubmissionKind string

const (
	KindSimulate  SubmissionKind = "simulate"
	KindBroadcast SubmissionKind = "broadcast"
)

// FailureKind classifies a non-successful SubmissionResult.
type FailureKind string

const (
	FailureNone FailureKind = ""

	// FailureTransport means the HTTP round-trip to the node failed.
	FailureTransport FailureKind = "transport_failed"

	// FailureSimulationRejected means the dry-run endpoint returned an error.
	FailureSimulationRejected FailureKind = "simulation_rejected"

	// FailureBroadcastRejected means the tx was refused before entering a block.
	FailureBroadcastRejected FailureKind = "broadcast_rejected"

	// FailurePollingTimeout means the tx was admitted but never observed in a
	// block within the poll budget. Its fate is unknown.
	FailurePollingTimeout FailureKind = "polling_timeout"

	// FailureExecutionFailed means the tx was included with a non-zero code.
	FailureExecutionFailed FailureKind = "execution_failed"

	// FailurePartialExecution means the tx succeeded with code 0 but the chain
	// did not emit an action event for every submitted message type.
	FailurePartialExecution FailureKind = "partial_execution"

	// FailureMalformedResponse means the node answered with an unexpected shape.
	FailureMalformedResponse FailureKind = "malformed_response"
)

// Ambiguous reports whether the transaction may still land on chain.
func (k FailureKind) Ambiguous() bool {
	return k == FailurePollingTimeout
}

// CodeInternal is the code reported for failures that carry no chain code.
const CodeInternal uint32 = 1

// SubmissionResult is the single outcome contract of a submission attempt.
// It is never mutated after being returned.
type SubmissionResult struct {
	Kind    SubmissionKind  `json:"kind" yaml:"kind"`
	Success bool            `json:"success" yaml:"success"`
	Code    uint32          `json:"code" yaml:"code"`
	GasUsed string          `json:"gas_used" yaml:"gas_used"`
	RawLog  string          `json:"raw_log" yaml:"raw_log"`
	Raw     json.RawMessage `json:"raw,omitempty" yaml:"-"`

	// TxHash is set once the node accepted a broadcast.
	TxHash string `json:"txhash,omitempty" yaml:"txhash,omitempty"`

	// Failure is FailureNone when Success is true.
	Failure FailureKind `json:"failure,omitempty" yaml:"failure,omitempty"`

	// MissingActions lists submitted message types with no matching action event.
	MissingActions []string `json:"missing_actions,omitempty" yaml:"missing_actions,omitempty"`

	// SubmissionID correlates the result with the send's log lines.
	SubmissionID string `json:"submission_id,omitempty" yaml:"submission_id,omitempty"`

	// ChainID is the chain the transaction was signed for.
	ChainID string `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
}

// Events returns the chain events carried by the raw response, if any.
func (r *SubmissionResult) Events() []Event {
	if r == nil || len(r.Raw) == 0 {
		return nil
	}
	switch r.Kind {
	case KindSimulate:
		var sim struct {
			Result struct {
				Events []Event `json:"events"`
			} `json:"result"`
		}
		if json.Unmarshal(r.Raw, &sim) != nil {
			return nil
		}
		return sim.Result.Events
	default:
		var tx struct {
			TxResponse struct {
				Events []Event `json:"events"`
			} `json:"tx_response"`
		}
		if json.Unmarshal(r.Raw, &tx) != nil {
			return nil
		}
		return tx.TxResponse.Events
	}
}

// Event is an ABCI event as rendered by the REST gateway.
type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

// EventAttribute is one key/value pair of an Event.
type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Index bool   `json:"index,omitempty"`
}
