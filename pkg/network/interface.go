// Package network defines the chain-facing contract used by the dwapp tools.
//
// Callers describe what they want executed as a list of opaque messages and get
// back exactly one SubmissionResult, regardless of whether the node rejected the
// transaction at simulation, at mempool admission, at execution, or never
// confirmed it at all.
//
// Example usage:
//
//	package main
//
//	import (
//	    "github.com/altuslabsxyz/dwapp/pkg/network"
//	    "github.com/altuslabsxyz/dwapp/pkg/network/cosmos"
//	)
//
//	func main() {
//	    wallet, _ := cosmos.NewLocalWallet(mnemonic, cosmos.DefaultBech32Prefix, cosmos.DefaultHDPath)
//	    client, _ := cosmos.NewClient(&network.ClientConfig{APIURL: "http://localhost:1317"})
//	    res, err := client.Send(ctx, wallet, msgs, network.SendOptions{})
//	    // ...
//	}
package network

import (
	"context"
)

// TxSender is the core abstraction for running the full transaction lifecycle.
// Implementations resolve the account, build, encode, sign and submit.
type TxSender interface {
	// Send runs the lifecycle for msgs signed by the wallet's first account.
	// Errors are returned only for failures before submission (guard, account
	// resolution, encoding, signing). Everything from submission onward is
	// reported through the returned SubmissionResult.
	Send(ctx context.Context, wallet Wallet, msgs []Msg, opts SendOptions) (*SubmissionResult, error)

	// ResolveAccount fetches the chain id and the account's current number and sequence.
	ResolveAccount(ctx context.Context, address string) (*AccountIdentity, error)
}

// Wallet is the external signing capability. It never exposes key material.
type Wallet interface {
	// Accounts returns the accounts the wallet can sign for. The first one is
	// used as the transaction signer.
	Accounts(ctx context.Context) ([]WalletAccount, error)

	// SignDirect signs the canonical sign document for the given signer address.
	SignDirect(ctx context.Context, signerAddress string, doc SignDoc) (*DirectSignResponse, error)
}

// Confirmer reviews a broadcast before it is built. It may return an edited
// request. Returning ok == false cancels the send.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (edited ConfirmRequest, ok bool, err error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (ConfirmRequest, bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (ConfirmRequest, bool, error) {
	return f(ctx, req)
}

// ConfirmRequest is what a Confirmer gets to review.
type ConfirmRequest struct {
	ChainID string `json:"chain_id"`
	Address string `json:"address"`
	Msgs    []Msg  `json:"msgs"`
	Memo    string `json:"memo"`
	Fee     Fee    `json:"fee"`
}

// SendOptions tune one Send invocation.
type SendOptions struct {
	// Memo is attached to the transaction body.
	Memo string

	// Fee overrides DefaultFee when non-nil.
	Fee *Fee

	// Simulate submits to the dry-run endpoint instead of broadcasting.
	Simulate bool

	// AllowLeadingZeroAmounts downgrades the leading-zero amount guard from a
	// hard error to a logged warning.
	AllowLeadingZeroAmounts bool

	// Confirm is consulted before broadcasts. Nil means no confirmation.
	Confirm Confirmer
}
