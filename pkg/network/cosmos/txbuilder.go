// pkg/network/cosmos/txbuilder.go
package cosmos

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// Client implements network.TxSender against a Cosmos SDK REST (LCD) endpoint.
// A Client holds no per-account state; callers must serialize sends per account
// since two concurrent sends read the same sequence.
type Client struct {
	apiURL string
	client *http.Client
	poll   network.PollPolicy
	timer  retry.Timer
	logger log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimer replaces the timer used between poll attempts.
func WithTimer(t retry.Timer) Option {
	return func(c *Client) {
		c.timer = t
	}
}

// NewClient creates a new Client for the node at cfg.APIURL.
func NewClient(cfg *network.ClientConfig, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API URL is required")
	}

	poll := network.DefaultPollPolicy()
	if cfg.Poll != nil {
		poll = *cfg.Poll
	}
	if poll.Attempts == 0 {
		return nil, fmt.Errorf("poll attempts must be at least 1")
	}
	if poll.Interval < 0 {
		return nil, fmt.Errorf("poll interval cannot be negative")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		client: &http.Client{Timeout: timeout},
		poll:   poll,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Send runs the full lifecycle: guard, resolve, build, encode, sign, submit.
func (c *Client) Send(ctx context.Context, wallet network.Wallet, msgs []network.Msg, opts network.SendOptions) (*network.SubmissionResult, error) {
	id := uuid.NewString()
	logger := c.logger.With("submission", id)

	if len(msgs) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	if err := c.guard(logger, msgs, opts.AllowLeadingZeroAmounts); err != nil {
		return nil, err
	}

	signer, err := firstAccount(ctx, wallet)
	if err != nil {
		return nil, err
	}

	identity, err := c.ResolveAccount(ctx, signer.Address)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved account",
		"address", identity.Address,
		"chain_id", identity.ChainID,
		"account_number", identity.AccountNumber,
		"sequence", identity.Sequence)

	memo := opts.Memo
	fee := network.DefaultFee()
	if opts.Fee != nil {
		fee = *opts.Fee
	}

	if !opts.Simulate && opts.Confirm != nil {
		edited, ok, err := opts.Confirm.Confirm(ctx, network.ConfirmRequest{
			ChainID: identity.ChainID,
			Address: identity.Address,
			Msgs:    msgs,
			Memo:    memo,
			Fee:     fee,
		})
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			logger.Info("send cancelled by user")
			return nil, network.ErrCancelled
		}
		msgs, memo, fee = edited.Msgs, edited.Memo, edited.Fee
		if err := c.guard(logger, msgs, opts.AllowLeadingZeroAmounts); err != nil {
			return nil, err
		}
	}

	env := PrepareTx(msgs, memo, &fee)
	AddSignerInfo(env, signer.PubKey, identity.Sequence)

	canon, err := c.Canonicalize(ctx, env)
	if err != nil {
		return nil, err
	}

	txBytes, err := SignTx(ctx, wallet, signer.Address, identity, canon)
	if err != nil {
		return nil, err
	}
	logger.Debug("signed transaction", "tx_hash", TxHash(txBytes), "size", len(txBytes))

	kind := network.KindBroadcast
	if opts.Simulate {
		kind = network.KindSimulate
	}

	res := c.Submit(ctx, logger, txBytes, network.MsgTypes(msgs), kind)
	res.SubmissionID = id
	res.ChainID = identity.ChainID

	if res.Success {
		logger.Info("submission succeeded", "kind", res.Kind, "txhash", res.TxHash, "gas_used", res.GasUsed)
	} else {
		logger.Warn("submission failed",
			"kind", res.Kind,
			"failure", res.Failure,
			"code", res.Code,
			"txhash", res.TxHash,
			"raw_log", res.RawLog)
	}

	return res, nil
}

// guard blocks leading-zero amounts unless allow is set.
func (c *Client) guard(logger log.Logger, msgs []network.Msg, allow bool) error {
	violations := CheckMsgs(msgs)
	if len(violations) == 0 {
		return nil
	}
	verr := &network.LeadingZeroAmountsError{Violations: violations}
	if allow {
		logger.Warn("sending despite leading zero amounts", "violations", verr.Error())
		return nil
	}
	return verr
}

// firstAccount returns the wallet account used as signer.
func firstAccount(ctx context.Context, wallet network.Wallet) (network.WalletAccount, error) {
	if wallet == nil {
		return network.WalletAccount{}, &network.SigningError{Err: fmt.Errorf("wallet is required")}
	}
	accounts, err := wallet.Accounts(ctx)
	if err != nil {
		return network.WalletAccount{}, &network.SigningError{Err: err}
	}
	if len(accounts) == 0 {
		return network.WalletAccount{}, &network.SigningError{Err: network.ErrNoAccounts}
	}
	return accounts[0], nil
}

// APIURL returns the configured node url.
func (c *Client) APIURL() string {
	return c.apiURL
}

// PollPolicy returns the poll policy in effect.
func (c *Client) PollPolicy() network.PollPolicy {
	return c.poll
}

// Ensure Client fully implements network.TxSender.
var _ network.TxSender = (*Client)(nil)
