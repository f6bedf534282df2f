package interactive

import (
	"context"
	"errors"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

type scriptedPrompter struct {
	actions  []Action
	memos    []string
	err      error
	reviewed []Summary
}

func (p *scriptedPrompter) ChooseAction(summary Summary) (Action, error) {
	p.reviewed = append(p.reviewed, summary)
	if p.err != nil {
		return ActionCancel, p.err
	}
	action := p.actions[0]
	p.actions = p.actions[1:]
	return action, nil
}

func (p *scriptedPrompter) EditMemo(current string) (string, error) {
	memo := p.memos[0]
	p.memos = p.memos[1:]
	return memo, nil
}

func newTestConfirmer(p Prompter, tty bool) *Confirmer {
	c := NewConfirmer(p)
	c.interactive = func() bool { return tty }
	return c
}

func testRequest() network.ConfirmRequest {
	return network.ConfirmRequest{
		ChainID: "dyson-1",
		Address: "dys1signer",
		Msgs: []network.Msg{
			{"@type": network.MsgTypeBankSend},
			{"@type": network.MsgTypeStorageSet},
		},
		Memo: "hello",
		Fee:  network.Fee{Amount: []network.Coin{{Denom: "dys", Amount: "5000"}}, GasLimit: "200000"},
	}
}

func TestConfirmer_Broadcast(t *testing.T) {
	p := &scriptedPrompter{actions: []Action{ActionBroadcast}}

	edited, ok, err := newTestConfirmer(p, true).Confirm(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", edited.Memo)
	require.Len(t, p.reviewed, 1)
	assert.Equal(t, []string{network.MsgTypeBankSend, network.MsgTypeStorageSet}, p.reviewed[0].MsgTypes)
	assert.Equal(t, "5000dys", p.reviewed[0].Fee)
}

func TestConfirmer_EditMemoThenBroadcast(t *testing.T) {
	p := &scriptedPrompter{actions: []Action{ActionEditMemo, ActionBroadcast}, memos: []string{"updated"}}

	edited, ok, err := newTestConfirmer(p, true).Confirm(context.Background(), testRequest())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "updated", edited.Memo)
	require.Len(t, p.reviewed, 2)
	assert.Equal(t, "updated", p.reviewed[1].Memo)
}

func TestConfirmer_Cancel(t *testing.T) {
	p := &scriptedPrompter{actions: []Action{ActionCancel}}

	_, ok, err := newTestConfirmer(p, true).Confirm(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmer_InterruptDeclines(t *testing.T) {
	p := &scriptedPrompter{err: &CancellationError{Message: "Operation cancelled"}}

	_, ok, err := newTestConfirmer(p, true).Confirm(context.Background(), testRequest())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfirmer_PromptError(t *testing.T) {
	p := &scriptedPrompter{err: errors.New("tty gone")}

	_, ok, err := newTestConfirmer(p, true).Confirm(context.Background(), testRequest())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestConfirmer_NotInteractive(t *testing.T) {
	p := &scriptedPrompter{actions: []Action{ActionBroadcast}}

	_, ok, err := newTestConfirmer(p, false).Confirm(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrNotInteractive)
	assert.False(t, ok)
	assert.Empty(t, p.reviewed)
}

func TestSummary_String(t *testing.T) {
	req := testRequest()
	req.Fee.Amount = nil

	s := NewSummary(req).String()
	assert.Contains(t, s, "dyson-1")
	assert.Contains(t, s, "[1] "+network.MsgTypeStorageSet)
	assert.Contains(t, s, "none (gas limit 200000)")
	assert.Contains(t, s, "Memo:      hello")
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, IsCancellation(&CancellationError{Message: "x"}))
	assert.False(t, IsCancellation(errors.New("x")))
	assert.True(t, IsCancellation(handleInterruptError(promptui.ErrInterrupt)))
}
