package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func newTestLogger() (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := NewLoggerWithWriters(&out, &errOut)
	l.SetNoColor(true)
	return l, &out, &errOut
}

func TestLogger_Levels(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.Info("hello %s", "world")
	l.Warn("careful")
	l.Error("broken")
	l.Debug("hidden")
	l.Success("done")

	assert.Contains(t, out.String(), "hello world")
	assert.Contains(t, out.String(), "✓ done")
	assert.Contains(t, errOut.String(), "Warning: careful")
	assert.Contains(t, errOut.String(), "Error: broken")
	assert.NotContains(t, errOut.String(), "hidden")

	l.SetVerbose(true)
	l.Debug("shown")
	assert.Contains(t, errOut.String(), "[DEBUG] shown")
}

func TestLogger_JSONModeSuppressesText(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.SetJSONMode(true)

	l.Info("text")
	l.Success("text")
	l.Field("Code", 0)
	l.PrintSubmission(&network.SubmissionResult{Success: true})
	assert.Empty(t, out.String())

	l.Error("still reported")
	assert.Contains(t, errOut.String(), "still reported")
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.False(t, FormatText.Machine())
	assert.True(t, FormatYAML.Machine())
}

func TestRender(t *testing.T) {
	res := &network.SubmissionResult{
		Kind:    network.KindBroadcast,
		Success: false,
		Code:    5,
		GasUsed: "100",
		RawLog:  "insufficient funds",
		Raw:     json.RawMessage(`{"code":5}`),
		Failure: network.FailureExecutionFailed,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, res))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "execution_failed", decoded["failure"])
	assert.Equal(t, float64(5), decoded["code"])

	buf.Reset()
	require.NoError(t, Render(&buf, FormatYAML, res))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "insufficient funds", fromYAML["raw_log"])
	assert.NotContains(t, fromYAML, "raw")

	require.Error(t, Render(&buf, FormatText, res))
}

func TestPrintSubmission_Success(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.PrintSubmission(&network.SubmissionResult{
		Kind:    network.KindBroadcast,
		Success: true,
		GasUsed: "81234",
		TxHash:  "ABCDEF",
	})

	assert.Contains(t, out.String(), "Transaction committed")
	assert.Contains(t, out.String(), "ABCDEF")
	assert.Contains(t, out.String(), "81234")
	assert.Empty(t, errOut.String())
}

func TestPrintSubmission_Failure(t *testing.T) {
	l, out, errOut := newTestLogger()

	l.PrintSubmission(&network.SubmissionResult{
		Kind:    network.KindBroadcast,
		Success: false,
		Code:    1,
		TxHash:  "ABCDEF",
		RawLog:  "Transaction not found after 10 attempts: ABCDEF",
		Failure: network.FailurePollingTimeout,
	})

	assert.Contains(t, out.String(), "Transaction failed")
	assert.Contains(t, errOut.String(), "Failure: polling_timeout (code 1)")
	assert.Contains(t, errOut.String(), "Transaction not found after 10 attempts")
	assert.Contains(t, errOut.String(), "may still be committed")
}

func TestPrintFailure_MissingActions(t *testing.T) {
	l, _, errOut := newTestLogger()

	info := NewFailureInfo(&network.SubmissionResult{
		Kind:           network.KindSimulate,
		Failure:        network.FailurePartialExecution,
		MissingActions: []string{network.MsgTypeStorageSet},
	})
	info.ScriptError = map[string]any{"error": "boom"}
	l.PrintFailure(info)

	assert.Contains(t, errOut.String(), "Missing actions: "+network.MsgTypeStorageSet)
	assert.Contains(t, errOut.String(), "Script error: map[error:boom]")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(2)
	p.SetWriter(&buf)

	p.Stage("Estimating gas")
	p.Stage("Broadcasting")
	assert.Equal(t, 2, p.Current())
	assert.Contains(t, buf.String(), "[1/2] Estimating gas...")
	assert.Contains(t, buf.String(), "[2/2] Broadcasting...")
}

func TestStatusSpinner_Disabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatusSpinner(true)
	s.SetWriter(&buf)

	s.Start("waiting")
	assert.False(t, s.Running())
	s.Update("still waiting")
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestStatusSpinner_StartStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatusSpinner(false)
	s.SetWriter(&buf)

	s.Start("waiting")
	assert.True(t, s.Running())
	s.Stop()
	assert.False(t, s.Running())
	s.Stop()
}
