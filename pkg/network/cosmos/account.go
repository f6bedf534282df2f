// pkg/network/cosmos/account.go
package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// codeNotFound is the gRPC NotFound code the gateway returns for accounts
// that have never received funds.
const codeNotFound = 5

// accountInfoResponse represents the REST API response for account_info queries.
type accountInfoResponse struct {
	Info accountWrapper `json:"info"`
}

// accountWrapper is the base account as rendered by the gateway.
type accountWrapper struct {
	Address       string         `json:"address"`
	AccountNumber string         `json:"account_number"`
	Sequence      string         `json:"sequence"`
	PubKey        *pubKeyWrapper `json:"pub_key"`
}

// pubKeyWrapper handles public key info from the API response.
type pubKeyWrapper struct {
	Type string `json:"@type"`
	Key  string `json:"key"`
}

// ResolveAccount fetches the chain id and the current account number and
// sequence for address. An account unknown to the chain resolves to 0/0.
func (c *Client) ResolveAccount(ctx context.Context, address string) (*network.AccountIdentity, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	node, err := c.NodeInfo(ctx)
	if err != nil {
		return nil, err
	}

	identity := &network.AccountIdentity{
		ChainID: node.ChainID,
		Address: address,
	}

	reply := c.get(ctx, "/cosmos/auth/v1beta1/account_info/"+address)
	if reply.err != nil {
		return nil, &network.NetworkError{Op: "query account", URL: reply.url, Err: reply.err}
	}

	if !reply.ok() {
		if ne, ok := parseNodeError(reply.body); ok && ne.Code == codeNotFound {
			c.logger.Debug("account not found on chain, using zero account number and sequence", "address", address)
			return identity, nil
		}
		return nil, &network.NetworkError{
			Op:     "query account",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
		}
	}

	var resp accountInfoResponse
	if err := json.Unmarshal(reply.body, &resp); err != nil {
		return nil, &network.NetworkError{
			Op:     "query account",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
			Err:    fmt.Errorf("failed to parse account response: %w", err),
		}
	}

	identity.AccountNumber, identity.Sequence, err = parseAccountNumbers(&resp.Info)
	if err != nil {
		return nil, &network.NetworkError{
			Op:     "query account",
			URL:    reply.url,
			Status: reply.status,
			Body:   string(reply.body),
			Err:    err,
		}
	}

	return identity, nil
}

// parseAccountNumbers extracts the account number and sequence. Empty fields
// read as zero, matching how the gateway omits defaults.
func parseAccountNumbers(info *accountWrapper) (accountNumber, sequence uint64, err error) {
	if info.AccountNumber != "" {
		accountNumber, err = strconv.ParseUint(info.AccountNumber, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse account number: %w", err)
		}
	}

	if info.Sequence != "" {
		sequence, err = strconv.ParseUint(info.Sequence, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse sequence: %w", err)
		}
	}

	return accountNumber, sequence, nil
}
