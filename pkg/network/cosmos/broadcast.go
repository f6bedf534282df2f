// pkg/network/cosmos/broadcast.go
package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"github.com/avast/retry-go/v4"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// BroadcastMode specifies how to broadcast a transaction.
type BroadcastMode string

const (
	BroadcastModeSync BroadcastMode = "BROADCAST_MODE_SYNC"
)

type simulateRequest struct {
	TxBytes string `json:"tx_bytes"`
}

type broadcastRequest struct {
	TxBytes string        `json:"tx_bytes"`
	Mode    BroadcastMode `json:"mode"`
}

// Submit sends signed tx bytes to the simulate or broadcast endpoint and
// always returns exactly one result.
func (c *Client) Submit(ctx context.Context, logger log.Logger, txBytes []byte, msgTypes []string, kind network.SubmissionKind) *network.SubmissionResult {
	if logger == nil {
		logger = c.logger
	}
	encoded := base64.StdEncoding.EncodeToString(txBytes)

	if kind == network.KindSimulate {
		reply := c.post(ctx, "/cosmos/tx/v1beta1/simulate", simulateRequest{TxBytes: encoded})
		return normalizeSimulate(reply, msgTypes)
	}
	return c.broadcast(ctx, logger, encoded, msgTypes)
}

func (c *Client) broadcast(ctx context.Context, logger log.Logger, encoded string, msgTypes []string) *network.SubmissionResult {
	reply := c.post(ctx, "/cosmos/tx/v1beta1/txs", broadcastRequest{TxBytes: encoded, Mode: BroadcastModeSync})
	if reply.err != nil {
		return internalFailure(network.KindBroadcast, network.FailureTransport, "Broadcast error: "+reply.err.Error(), nil)
	}
	if !reply.ok() {
		return internalFailure(network.KindBroadcast, network.FailureBroadcastRejected, "Broadcast error: "+string(reply.body), reply.body)
	}

	var env txResponseEnvelope
	if err := json.Unmarshal(reply.body, &env); err != nil || env.TxResponse == nil || env.TxResponse.TxHash == "" {
		return internalFailure(network.KindBroadcast, network.FailureMalformedResponse, "No txhash in broadcast response", reply.body)
	}
	submitted := env.TxResponse

	if submitted.Code != 0 {
		logger.Warn("transaction rejected at broadcast", "txhash", submitted.TxHash, "code", submitted.Code)
		return &network.SubmissionResult{
			Kind:    network.KindBroadcast,
			Success: false,
			Code:    submitted.Code,
			GasUsed: orZero(submitted.GasUsed),
			RawLog:  StripScriptSuffix(submitted.RawLog),
			Raw:     rawJSON(reply.body),
			TxHash:  submitted.TxHash,
			Failure: network.FailureBroadcastRejected,
		}
	}

	logger.Info("transaction accepted into mempool", "txhash", submitted.TxHash)

	final, attempts, err := c.pollTx(ctx, logger, submitted.TxHash)
	if err != nil {
		rawLog := fmt.Sprintf("Transaction not found after %d attempts: %s", attempts, submitted.TxHash)
		if ctx.Err() != nil {
			rawLog = fmt.Sprintf("Polling aborted after %d attempts: %s: %v", attempts, submitted.TxHash, ctx.Err())
		}
		return &network.SubmissionResult{
			Kind:    network.KindBroadcast,
			Success: false,
			Code:    network.CodeInternal,
			GasUsed: "0",
			RawLog:  rawLog,
			TxHash:  submitted.TxHash,
			Failure: network.FailurePollingTimeout,
		}
	}

	res := normalizeFinal(final, msgTypes)
	if res.TxHash == "" {
		res.TxHash = submitted.TxHash
	}
	return res
}

// pollTx fetches the tx by hash until the node returns it or the poll budget
// runs out. Any non-success reply, including transport errors, counts as
// not found yet.
func (c *Client) pollTx(ctx context.Context, logger log.Logger, hash string) (nodeReply, uint, error) {
	var (
		final    nodeReply
		attempts uint
	)

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.poll.Attempts),
		retry.Delay(c.poll.Interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	}
	if c.timer != nil {
		opts = append(opts, retry.WithTimer(c.timer))
	}

	err := retry.Do(func() error {
		attempts++
		reply := c.get(ctx, "/cosmos/tx/v1beta1/txs/"+hash)
		if reply.err != nil {
			logger.Debug("poll attempt failed", "txhash", hash, "attempt", attempts, "error", reply.err)
			return reply.err
		}
		if !reply.ok() {
			logger.Debug("transaction not found yet", "txhash", hash, "attempt", attempts, "status", reply.status)
			return fmt.Errorf("tx %s not found (status %d)", hash, reply.status)
		}
		final = reply
		return nil
	}, opts...)
	if err != nil {
		logger.Warn("transaction not observed within poll budget", "txhash", hash, "attempts", attempts)
		return nodeReply{}, attempts, err
	}

	logger.Debug("transaction found", "txhash", hash, "attempt", attempts)
	return final, attempts, nil
}
