// internal/history/bolt_test.go
package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func newBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, at time.Time, success bool) *Record {
	res := &network.SubmissionResult{
		Kind:         network.KindBroadcast,
		Success:      success,
		GasUsed:      "100",
		TxHash:       "HASH-" + id,
		Raw:          json.RawMessage(`{"tx_response":{"code":0}}`),
		SubmissionID: id,
	}
	if !success {
		res.Code = 5
		res.Failure = network.FailureExecutionFailed
	}
	rec := NewRecord("dys1sender", "dyson-1", "", []network.Msg{{"@type": network.MsgTypeBankSend}}, res)
	rec.Time = at
	return rec
}

// stores runs a test against every Store implementation.
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"bolt":   newBoltStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestStore_AppendGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

			rec := record("4f1c2a9e-0000-4000-8000-000000000001", base, true)
			require.NoError(t, s.Append(ctx, rec))

			got, err := s.Get(ctx, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, rec.ID, got.ID)
			assert.Equal(t, "dys1sender", got.Sender)
			assert.Equal(t, "dyson-1", got.ChainID)
			assert.Equal(t, network.KindBroadcast, got.Kind)
			assert.Equal(t, []string{network.MsgTypeBankSend}, got.MsgTypes)
			assert.Equal(t, "HASH-"+rec.ID, got.TxHash)
			assert.True(t, got.Time.Equal(base))
			require.NotNil(t, got.Result)
			assert.True(t, got.Result.Success)
			assert.JSONEq(t, `{"tx_response":{"code":0}}`, string(got.Result.Raw))
		})
	}
}

func TestStore_GetByPrefix(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC()
			require.NoError(t, s.Append(ctx, record("abcd1111", now, true)))
			require.NoError(t, s.Append(ctx, record("abcd2222", now.Add(time.Second), true)))

			got, err := s.Get(ctx, "abcd1")
			require.NoError(t, err)
			assert.Equal(t, "abcd1111", got.ID)

			_, err = s.Get(ctx, "abcd")
			var ambiguous *AmbiguousIDError
			require.ErrorAs(t, err, &ambiguous)
			assert.Equal(t, []string{"abcd1111", "abcd2222"}, ambiguous.Matches)

			_, err = s.Get(ctx, "ab")
			assert.True(t, IsNotFound(err))

			_, err = s.Get(ctx, "ffff0000")
			assert.True(t, IsNotFound(err))
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

			require.NoError(t, s.Append(ctx, record("rec-1", base, true)))
			require.NoError(t, s.Append(ctx, record("rec-2", base.Add(time.Minute), false)))
			require.NoError(t, s.Append(ctx, record("rec-3", base.Add(2*time.Minute), true)))

			all, err := s.List(ctx, ListOptions{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "rec-3", all[0].ID)
			assert.Equal(t, "rec-1", all[2].ID)

			limited, err := s.List(ctx, ListOptions{Limit: 2})
			require.NoError(t, err)
			require.Len(t, limited, 2)
			assert.Equal(t, "rec-2", limited[1].ID)

			failed, err := s.List(ctx, ListOptions{FailedOnly: true})
			require.NoError(t, err)
			require.Len(t, failed, 1)
			assert.Equal(t, "rec-2", failed[0].ID)
			assert.Equal(t, network.FailureExecutionFailed, failed[0].Result.Failure)

			sims, err := s.List(ctx, ListOptions{Kind: network.KindSimulate})
			require.NoError(t, err)
			assert.Empty(t, sims)
		})
	}
}

func TestStore_AppendReplaces(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

			require.NoError(t, s.Append(ctx, record("same", base, false)))
			require.NoError(t, s.Append(ctx, record("same", base.Add(time.Hour), true)))

			all, err := s.List(ctx, ListOptions{})
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.True(t, all[0].Result.Success)
		})
	}
}

func TestStore_RequiresID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Append(context.Background(), &Record{})
			require.Error(t, err)
		})
	}
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, record("persisted", time.Now().UTC(), true)))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, "HASH-persisted", got.TxHash)
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("dys1a", "dyson-1", "memo", nil, nil)
	assert.NotEmpty(t, rec.ID)
	assert.True(t, rec.Failed())
	assert.False(t, rec.Time.IsZero())

	res := &network.SubmissionResult{Kind: network.KindSimulate, Success: true, SubmissionID: "sub-1"}
	rec = NewRecord("dys1a", "dyson-1", "", []network.Msg{{"@type": network.MsgTypeScriptExec}}, res)
	assert.Equal(t, "sub-1", rec.ID)
	assert.Equal(t, network.KindSimulate, rec.Kind)
	assert.False(t, rec.Failed())
}
