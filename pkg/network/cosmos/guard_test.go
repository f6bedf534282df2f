package cosmos

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func TestCollectLeadingZeroAmounts_Boundaries(t *testing.T) {
	tests := []struct {
		amount  any
		flagged bool
	}{
		{amount: "0123", flagged: true},
		{amount: "00", flagged: true},
		{amount: " 0050 ", flagged: true},
		{amount: "0.5", flagged: true},
		{amount: "123", flagged: false},
		{amount: "0", flagged: false},
		{amount: "", flagged: false},
		{amount: 10, flagged: false},
		{amount: true, flagged: false},
		{amount: nil, flagged: false},
	}

	for _, tt := range tests {
		violations := CollectLeadingZeroAmounts(map[string]any{"amount": tt.amount})
		if tt.flagged {
			require.Len(t, violations, 1, "amount %v", tt.amount)
			require.Equal(t, "amount", violations[0].Path)
		} else {
			require.Empty(t, violations, "amount %v", tt.amount)
		}
	}
}

func TestCollectLeadingZeroAmounts_Paths(t *testing.T) {
	data := map[string]any{
		"amount": []any{
			map[string]any{"denom": "dys", "amount": "007"},
			map[string]any{"denom": "dys", "amount": "7"},
		},
		"task_gas_fee": map[string]any{"denom": "dys", "amount": "01"},
		"msgs": []any{
			map[string]any{"value": map[string]any{"amount": "0099"}},
		},
	}

	violations := CollectLeadingZeroAmounts(data)
	paths := make([]string, len(violations))
	for i, v := range violations {
		paths[i] = v.Path
	}
	require.ElementsMatch(t, []string{
		"amount[0].amount",
		"msgs[0].value.amount",
		"task_gas_fee.amount",
	}, paths)
}

func TestCollectLeadingZeroAmounts_EmbeddedJSON(t *testing.T) {
	data := map[string]any{
		"kwargs": `{"payment":{"amount":"0042"}}`,
		"args":   `[{"amount":"15"}]`,
		"data":   "not json at all",
	}

	violations := CollectLeadingZeroAmounts(data)
	require.Len(t, violations, 1)
	require.Equal(t, "kwargs.payment.amount", violations[0].Path)
	require.Equal(t, "0042", violations[0].Amount)
}

func TestCollectLeadingZeroAmounts_TypedValues(t *testing.T) {
	data := map[string]any{
		"fee": network.Fee{Amount: []network.Coin{{Denom: "dys", Amount: "0001"}}, GasLimit: "1"},
	}

	violations := CollectLeadingZeroAmounts(data)
	require.Len(t, violations, 1)
	require.Equal(t, "fee.amount[0].amount", violations[0].Path)
}

func TestCollectLeadingZeroAmounts_RootArray(t *testing.T) {
	violations := CollectLeadingZeroAmounts([]any{map[string]any{"amount": "01"}})
	require.Len(t, violations, 1)
	require.Equal(t, "[0].amount", violations[0].Path)
}

func TestCheckMsgs(t *testing.T) {
	msgs := []network.Msg{
		{"@type": network.MsgTypeBankSend, "amount": "100"},
		{"@type": network.MsgTypeBankSend, "amount": "0050"},
	}

	violations := CheckMsgs(msgs)
	require.Len(t, violations, 1)
	require.Equal(t, 1, violations[0].MsgIndex)
	require.Equal(t, "amount", violations[0].Path)

	err := &network.LeadingZeroAmountsError{Violations: violations}
	require.Contains(t, err.Error(), "msgs[1] amount: 0050")
	require.Contains(t, err.Error(), "hex")
}
