package cosmos

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// DefaultGasAdjustment scales simulated gas into a gas limit.
const DefaultGasAdjustment = "1.5"

// OffchainAppDomain is the app domain stamped on off-chain signatures.
const OffchainAppDomain = "dysond"

// GasSettings controls automatic gas estimation.
type GasSettings struct {
	// Price is a gas price like "0.025dys". Empty means no fee amount.
	Price string

	// Adjustment multiplies the simulated gas. Empty means DefaultGasAdjustment.
	Adjustment string
}

// EstimateGas simulates msgs and returns ceil(gasUsed * adjustment). A
// simulation that reports zero gas falls back to the default gas limit.
func (c *Client) EstimateGas(ctx context.Context, wallet network.Wallet, msgs []network.Msg, gas GasSettings, opts network.SendOptions) (uint64, error) {
	defaultLimit, _ := strconv.ParseUint(network.DefaultGasLimit, 10, 64)

	adjStr := gas.Adjustment
	if adjStr == "" {
		adjStr = DefaultGasAdjustment
	}
	adjustment, err := sdkmath.LegacyNewDecFromStr(adjStr)
	if err != nil {
		return 0, fmt.Errorf("invalid gas adjustment %q: %w", adjStr, err)
	}
	if !adjustment.IsPositive() {
		return 0, fmt.Errorf("gas adjustment must be positive, got %s", adjStr)
	}

	fee, err := BuildFee(defaultLimit, gas.Price)
	if err != nil {
		return 0, err
	}

	opts.Simulate = true
	opts.Fee = &fee
	opts.Confirm = nil

	res, err := c.Send(ctx, wallet, msgs, opts)
	if err != nil {
		return 0, err
	}
	if !res.Success {
		return 0, fmt.Errorf("gas estimation failed, code: [%d] %s", res.Code, res.RawLog)
	}

	used, err := strconv.ParseUint(res.GasUsed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse gas used %q: %w", res.GasUsed, err)
	}
	if used == 0 {
		return defaultLimit, nil
	}

	limit := adjustment.MulInt64(int64(used)).Ceil().TruncateInt().Uint64()
	c.logger.Debug("estimated gas", "gas_used", used, "adjustment", adjStr, "gas_limit", limit)
	return limit, nil
}

// SendAuto estimates gas, prices the fee from it and then runs Send.
func (c *Client) SendAuto(ctx context.Context, wallet network.Wallet, msgs []network.Msg, gas GasSettings, opts network.SendOptions) (*network.SubmissionResult, error) {
	limit, err := c.EstimateGas(ctx, wallet, msgs, gas, opts)
	if err != nil {
		return nil, err
	}

	fee, err := BuildFee(limit, gas.Price)
	if err != nil {
		return nil, err
	}
	opts.Fee = &fee

	return c.Send(ctx, wallet, msgs, opts)
}

// SignArbitraryData signs data inside an off-chain MsgSignArbitraryData
// transaction and returns the signed tx bytes as base64. Nothing is broadcast.
// The sign doc carries the real account number but an empty chain id and a
// zero sequence.
func (c *Client) SignArbitraryData(ctx context.Context, wallet network.Wallet, data string) (string, error) {
	signer, err := firstAccount(ctx, wallet)
	if err != nil {
		return "", err
	}

	identity, err := c.ResolveAccount(ctx, signer.Address)
	if err != nil {
		return "", err
	}
	identity.ChainID = ""
	identity.Sequence = 0

	msg := network.Msg{
		"@type":      network.MsgTypeSignArbitraryData,
		"signer":     signer.Address,
		"app_domain": OffchainAppDomain,
		"data":       data,
	}
	fee := network.Fee{Amount: []network.Coin{}, GasLimit: "0"}

	env := PrepareTx([]network.Msg{msg}, "", &fee)
	AddSignerInfo(env, signer.PubKey, 0)

	canon, err := c.Canonicalize(ctx, env)
	if err != nil {
		return "", err
	}

	txBytes, err := SignTx(ctx, wallet, signer.Address, identity, canon)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(txBytes), nil
}
