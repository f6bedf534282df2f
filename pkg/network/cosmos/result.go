package cosmos

import (
	"encoding/json"
	"strings"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// scriptErrorSuffix is appended by the script module to execution errors.
const scriptErrorSuffix = ": script execution error"

// StripScriptSuffix removes the script module's trailing error marker and
// the whitespace around what is left.
func StripScriptSuffix(log string) string {
	return strings.TrimSpace(strings.TrimSuffix(log, scriptErrorSuffix))
}

// txResponse is the tx_response object of broadcast and get-tx replies.
type txResponse struct {
	TxHash  string          `json:"txhash"`
	Height  string          `json:"height"`
	Code    uint32          `json:"code"`
	RawLog  string          `json:"raw_log"`
	GasUsed string          `json:"gas_used"`
	Events  []network.Event `json:"events"`
}

type txResponseEnvelope struct {
	TxResponse *txResponse `json:"tx_response"`
}

type simulateResponse struct {
	GasInfo *struct {
		GasWanted string `json:"gas_wanted"`
		GasUsed   string `json:"gas_used"`
	} `json:"gas_info"`
	Result *struct {
		Log    string          `json:"log"`
		Events []network.Event `json:"events"`
	} `json:"result"`
}

// MissingActions returns the entries of msgTypes for which no "message"
// event carries a matching "action" attribute, in submission order.
func MissingActions(events []network.Event, msgTypes []string) []string {
	seen := make(map[string]bool)
	for _, ev := range events {
		if ev.Type != "message" {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == "action" {
				seen[attr.Value] = true
			}
		}
	}

	var missing []string
	for _, t := range msgTypes {
		if !seen[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

func orZero(gas string) string {
	if gas == "" {
		return "0"
	}
	return gas
}

func rawJSON(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	b, _ := json.Marshal(string(body))
	return b
}

// internalFailure builds a result for failures that carry no chain code.
func internalFailure(kind network.SubmissionKind, failure network.FailureKind, rawLog string, body []byte) *network.SubmissionResult {
	res := &network.SubmissionResult{
		Kind:    kind,
		Success: false,
		Code:    network.CodeInternal,
		GasUsed: "0",
		RawLog:  rawLog,
		Failure: failure,
	}
	if len(body) > 0 {
		res.Raw = rawJSON(body)
	}
	return res
}

// normalizeSimulate turns a simulate reply into a result.
func normalizeSimulate(reply nodeReply, msgTypes []string) *network.SubmissionResult {
	if reply.err != nil {
		return internalFailure(network.KindSimulate, network.FailureTransport, "Simulation error: "+reply.err.Error(), nil)
	}

	if !reply.ok() {
		rawLog := string(reply.body)
		if ne, ok := parseNodeError(reply.body); ok {
			rawLog = ne.Message
		}
		return internalFailure(network.KindSimulate, network.FailureSimulationRejected, StripScriptSuffix(rawLog), reply.body)
	}

	var sim simulateResponse
	if err := json.Unmarshal(reply.body, &sim); err != nil {
		return internalFailure(network.KindSimulate, network.FailureMalformedResponse, "Malformed simulate response: "+err.Error(), reply.body)
	}

	res := &network.SubmissionResult{
		Kind:    network.KindSimulate,
		Success: true,
		Code:    0,
		GasUsed: "0",
		Raw:     rawJSON(reply.body),
	}
	if sim.GasInfo != nil {
		res.GasUsed = orZero(sim.GasInfo.GasUsed)
	}

	var events []network.Event
	if sim.Result != nil {
		res.RawLog = StripScriptSuffix(sim.Result.Log)
		events = sim.Result.Events
	}

	applyActionCheck(res, events, msgTypes)
	return res
}

// normalizeFinal turns the reply of the last successful poll into a result.
func normalizeFinal(reply nodeReply, msgTypes []string) *network.SubmissionResult {
	var env txResponseEnvelope
	if err := json.Unmarshal(reply.body, &env); err != nil || env.TxResponse == nil {
		return internalFailure(network.KindBroadcast, network.FailureMalformedResponse, "No tx_response in final data", reply.body)
	}

	tx := env.TxResponse
	res := &network.SubmissionResult{
		Kind:    network.KindBroadcast,
		Success: tx.Code == 0,
		Code:    tx.Code,
		GasUsed: orZero(tx.GasUsed),
		RawLog:  StripScriptSuffix(tx.RawLog),
		Raw:     rawJSON(reply.body),
		TxHash:  tx.TxHash,
	}

	if !res.Success {
		res.Failure = network.FailureExecutionFailed
		return res
	}

	applyActionCheck(res, tx.Events, msgTypes)
	return res
}

// applyActionCheck downgrades a successful result when the chain did not
// report an action for every submitted message type. The code is left as is.
func applyActionCheck(res *network.SubmissionResult, events []network.Event, msgTypes []string) {
	if !res.Success {
		return
	}
	missing := MissingActions(events, msgTypes)
	if len(missing) == 0 {
		return
	}
	res.Success = false
	res.Failure = network.FailurePartialExecution
	res.MissingActions = missing
}
