package interactive

import (
	"fmt"
	"strings"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// Action is the user's answer to a broadcast review.
type Action int

const (
	ActionBroadcast Action = iota
	ActionEditMemo
	ActionCancel
)

// ActionItem represents an action for display in promptui.
type ActionItem struct {
	Action      Action
	Name        string
	Description string
}

// Actions available when reviewing a broadcast.
var Actions = []ActionItem{
	{Action: ActionBroadcast, Name: "Sign and broadcast", Description: "submit the transaction"},
	{Action: ActionEditMemo, Name: "Edit memo", Description: "change the memo, then review again"},
	{Action: ActionCancel, Name: "Cancel", Description: "nothing is signed"},
}

// Summary is the printable review of a ConfirmRequest.
type Summary struct {
	ChainID  string
	Signer   string
	MsgTypes []string
	Memo     string
	Fee      string
	GasLimit string
}

// NewSummary condenses a request for display.
func NewSummary(req network.ConfirmRequest) Summary {
	fee := make([]string, len(req.Fee.Amount))
	for i, c := range req.Fee.Amount {
		fee[i] = c.Amount + c.Denom
	}
	feeText := strings.Join(fee, ",")
	if feeText == "" {
		feeText = "none"
	}

	return Summary{
		ChainID:  req.ChainID,
		Signer:   req.Address,
		MsgTypes: network.MsgTypes(req.Msgs),
		Memo:     req.Memo,
		Fee:      feeText,
		GasLimit: req.Fee.GasLimit,
	}
}

// String renders the summary as an indented block.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Chain:     %s\n", s.ChainID)
	fmt.Fprintf(&b, "  Signer:    %s\n", s.Signer)
	fmt.Fprintf(&b, "  Messages:  %d\n", len(s.MsgTypes))
	for i, t := range s.MsgTypes {
		fmt.Fprintf(&b, "    [%d] %s\n", i, t)
	}
	if s.Memo != "" {
		fmt.Fprintf(&b, "  Memo:      %s\n", s.Memo)
	}
	fmt.Fprintf(&b, "  Fee:       %s (gas limit %s)\n", s.Fee, s.GasLimit)
	return b.String()
}
