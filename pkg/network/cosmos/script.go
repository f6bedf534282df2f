package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// EventExecScript is the event type the script module emits on execution.
const EventExecScript = "dysonprotocol.script.v1.EventExecScript"

// ScriptCall describes one script function invocation.
type ScriptCall struct {
	// ExecutorAddress defaults to the wallet's first account in RunScript.
	ExecutorAddress  string
	ScriptAddress    string
	FunctionName     string
	Args             string
	Kwargs           string
	ExtraCode        string
	AttachedMessages []network.Msg
}

// ScriptResult is the outcome of RunScript.
type ScriptResult struct {
	Kind    network.SubmissionKind `json:"kind" yaml:"kind"`
	Success bool                   `json:"success" yaml:"success"`

	// ScriptResponse is the decoded script return value on success, or the
	// decoded error object on failure. Nil when nothing could be decoded.
	ScriptResponse any `json:"script_response" yaml:"script_response"`

	// Submission is the full result of the underlying send.
	Submission *network.SubmissionResult `json:"submission" yaml:"submission"`
}

// NewMsgExec builds a script execution message.
func NewMsgExec(call ScriptCall) (network.Msg, error) {
	if call.ScriptAddress == "" {
		return nil, fmt.Errorf("script address is required")
	}

	attached := make([]any, len(call.AttachedMessages))
	for i, m := range call.AttachedMessages {
		attached[i] = map[string]any(m)
	}

	return network.Msg{
		"@type":             network.MsgTypeScriptExec,
		"executor_address":  call.ExecutorAddress,
		"script_address":    call.ScriptAddress,
		"function_name":     call.FunctionName,
		"args":              call.Args,
		"kwargs":            call.Kwargs,
		"extra_code":        call.ExtraCode,
		"attached_messages": attached,
	}, nil
}

// RunScript sends a single script execution and decodes the script's
// response from the events or, on failure, from the raw log.
func (c *Client) RunScript(ctx context.Context, wallet network.Wallet, call ScriptCall, opts network.SendOptions) (*ScriptResult, error) {
	if call.ScriptAddress == "" {
		return nil, fmt.Errorf("script address is required")
	}

	if call.ExecutorAddress == "" {
		signer, err := firstAccount(ctx, wallet)
		if err != nil {
			return nil, err
		}
		call.ExecutorAddress = signer.Address
	}

	msg, err := NewMsgExec(call)
	if err != nil {
		return nil, err
	}

	res, err := c.Send(ctx, wallet, []network.Msg{msg}, opts)
	if err != nil {
		return nil, err
	}

	out := &ScriptResult{
		Kind:       res.Kind,
		Success:    res.Success,
		Submission: res,
	}
	if res.Success {
		out.ScriptResponse = ParseScriptResponse(res.Events())
	} else {
		out.ScriptResponse = ParseScriptError(res.RawLog)
	}
	return out, nil
}

// ParseScriptResponse extracts the "result" member of the script event's
// response attribute. A string result holding JSON is decoded once more.
// If the attribute is not JSON the raw value is returned.
func ParseScriptResponse(events []network.Event) any {
	var value string
	found := false
	for _, ev := range events {
		if ev.Type != EventExecScript {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == "response" {
				value, found = attr.Value, true
				break
			}
		}
		break
	}
	if !found || value == "" {
		return nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(StripScriptSuffix(value)), &decoded); err != nil {
		return value
	}
	parsed, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}

	result := parsed["result"]
	if s, ok := result.(string); ok && s != "" {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			return inner
		}
	}
	return result
}

// ParseScriptError decodes the JSON object embedded in a failed script's raw
// log, taking the span from the first '{' to the last '}'. Nil if none.
func ParseScriptError(rawLog string) any {
	var candidate string
	first := strings.Index(rawLog, "{")
	last := strings.LastIndex(rawLog, "}")
	if first != -1 && last > first {
		candidate = rawLog[first : last+1]
	} else {
		candidate = StripScriptSuffix(rawLog)
	}

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil
	}
	return parsed
}
