// internal/history/record.go
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// Record is one journaled submission.
type Record struct {
	ID       string                    `json:"id" yaml:"id"`
	Time     time.Time                 `json:"time" yaml:"time"`
	Sender   string                    `json:"sender" yaml:"sender"`
	ChainID  string                    `json:"chain_id" yaml:"chain_id"`
	Kind     network.SubmissionKind    `json:"kind" yaml:"kind"`
	MsgTypes []string                  `json:"msg_types" yaml:"msg_types"`
	Memo     string                    `json:"memo,omitempty" yaml:"memo,omitempty"`
	TxHash   string                    `json:"txhash,omitempty" yaml:"txhash,omitempty"`
	Result   *network.SubmissionResult `json:"result" yaml:"result"`
}

// NewRecord builds a record for a finished submission. The submission id of
// the result is reused so journal entries match the library's log lines.
func NewRecord(sender, chainID, memo string, msgs []network.Msg, res *network.SubmissionResult) *Record {
	id := ""
	if res != nil {
		id = res.SubmissionID
	}
	if id == "" {
		id = uuid.NewString()
	}

	rec := &Record{
		ID:       id,
		Time:     time.Now().UTC(),
		Sender:   sender,
		ChainID:  chainID,
		MsgTypes: network.MsgTypes(msgs),
		Memo:     memo,
		Result:   res,
	}
	if res != nil {
		rec.Kind = res.Kind
		rec.TxHash = res.TxHash
	}
	return rec
}

// Failed reports whether the recorded submission did not succeed.
func (r *Record) Failed() bool {
	return r.Result == nil || !r.Result.Success
}

// ListOptions configures record listing.
type ListOptions struct {
	// Limit is the maximum number of results (0 = all).
	Limit int
	// FailedOnly keeps only unsuccessful submissions.
	FailedOnly bool
	// Kind filters by submission kind.
	Kind network.SubmissionKind
}

func (o ListOptions) match(r *Record) bool {
	if o.FailedOnly && !r.Failed() {
		return false
	}
	if o.Kind != "" && r.Kind != o.Kind {
		return false
	}
	return true
}

// Store defines the interface for the submission journal.
type Store interface {
	Append(ctx context.Context, rec *Record) error
	// Get resolves an exact id or a unique id prefix.
	Get(ctx context.Context, id string) (*Record, error)
	// List returns records newest first.
	List(ctx context.Context, opts ListOptions) ([]*Record, error)
	Close() error
}
