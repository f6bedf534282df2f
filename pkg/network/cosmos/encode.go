package cosmos

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

type encodeRequest struct {
	Tx *network.Envelope `json:"tx"`
}

type encodeResponse struct {
	TxBytes string `json:"tx_bytes"`
}

// Canonicalize has the node encode env and splits the result into the
// protobuf body and auth info sections that get signed. Message packing is
// left to the node, so no message registry is needed locally.
func (c *Client) Canonicalize(ctx context.Context, env *network.Envelope) (*network.CanonicalBytes, error) {
	reply := c.post(ctx, "/cosmos/tx/v1beta1/encode", encodeRequest{Tx: env})
	if reply.err != nil {
		return nil, &network.NetworkError{Op: "encode tx", URL: reply.url, Err: reply.err}
	}
	if !reply.ok() {
		return nil, &network.EncodingError{Status: reply.status, Body: string(reply.body)}
	}

	var resp encodeResponse
	if err := json.Unmarshal(reply.body, &resp); err != nil {
		return nil, &network.EncodingError{Status: reply.status, Body: string(reply.body), Err: err}
	}

	raw, err := base64.StdEncoding.DecodeString(resp.TxBytes)
	if err != nil {
		return nil, &network.EncodingError{
			Status: reply.status,
			Body:   string(reply.body),
			Err:    fmt.Errorf("failed to decode tx_bytes: %w", err),
		}
	}

	bodyBytes, authInfoBytes, err := splitTx(raw)
	if err != nil {
		return nil, &network.EncodingError{Status: reply.status, Body: string(reply.body), Err: err}
	}

	c.logger.Debug("encoded transaction", "body_bytes", len(bodyBytes), "auth_info_bytes", len(authInfoBytes))

	return &network.CanonicalBytes{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		TxBytesBase64: resp.TxBytes,
	}, nil
}

// splitTx decodes an encoded Tx and re-serializes its body and auth info.
func splitTx(raw []byte) (bodyBytes, authInfoBytes []byte, err error) {
	var tx txtypes.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal tx: %w", err)
	}
	if tx.Body == nil || tx.AuthInfo == nil {
		return nil, nil, fmt.Errorf("encoded tx is missing body or auth info")
	}

	bodyBytes, err = tx.Body.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tx body: %w", err)
	}
	authInfoBytes, err = tx.AuthInfo.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal auth info: %w", err)
	}
	return bodyBytes, authInfoBytes, nil
}

// AssembleTxRaw serializes the signed transaction.
func AssembleTxRaw(bodyBytes, authInfoBytes, signature []byte) ([]byte, error) {
	raw := &txtypes.TxRaw{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		Signatures:    [][]byte{signature},
	}
	bz, err := raw.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tx raw: %w", err)
	}
	return bz, nil
}

// DecodeTxRaw splits signed transaction bytes back into a readable form.
// Messages stay packed; only their type url is interpreted.
func DecodeTxRaw(txBytes []byte) (*network.DecodedTx, error) {
	var raw txtypes.TxRaw
	if err := raw.Unmarshal(txBytes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tx raw: %w", err)
	}

	var body txtypes.TxBody
	if err := body.Unmarshal(raw.BodyBytes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tx body: %w", err)
	}

	var authInfo txtypes.AuthInfo
	if err := authInfo.Unmarshal(raw.AuthInfoBytes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth info: %w", err)
	}

	decoded := &network.DecodedTx{
		Body: network.DecodedBody{
			Messages:      make([]network.DecodedAny, 0, len(body.Messages)),
			Memo:          body.Memo,
			TimeoutHeight: body.TimeoutHeight,
		},
		AuthInfo: network.DecodedAuthInfo{
			Signers: make([]network.DecodedSigner, 0, len(authInfo.SignerInfos)),
			Fee:     network.Fee{Amount: []network.Coin{}},
		},
		Signatures: make([]string, 0, len(raw.Signatures)),
	}

	for _, m := range body.Messages {
		decoded.Body.Messages = append(decoded.Body.Messages, network.DecodedAny{
			TypeURL: m.TypeUrl,
			Value:   base64.StdEncoding.EncodeToString(m.Value),
		})
	}

	for _, si := range authInfo.SignerInfos {
		signer := network.DecodedSigner{Sequence: si.Sequence}
		if si.PublicKey != nil {
			signer.PubKeyType = si.PublicKey.TypeUrl
			signer.PubKey = base64.StdEncoding.EncodeToString(si.PublicKey.Value)
		}
		if single := si.ModeInfo.GetSingle(); single != nil {
			signer.Mode = single.Mode.String()
		}
		decoded.AuthInfo.Signers = append(decoded.AuthInfo.Signers, signer)
	}

	if fee := authInfo.Fee; fee != nil {
		for _, coin := range fee.Amount {
			decoded.AuthInfo.Fee.Amount = append(decoded.AuthInfo.Fee.Amount, network.Coin{
				Denom:  coin.Denom,
				Amount: coin.Amount.String(),
			})
		}
		decoded.AuthInfo.Fee.GasLimit = fmt.Sprintf("%d", fee.GasLimit)
		decoded.AuthInfo.Fee.Payer = fee.Payer
		decoded.AuthInfo.Fee.Granter = fee.Granter
	}

	for _, sig := range raw.Signatures {
		decoded.Signatures = append(decoded.Signatures, base64.StdEncoding.EncodeToString(sig))
	}

	return decoded, nil
}

// TxHash returns the upper-case hex SHA-256 of the signed tx bytes, which is
// the hash the node reports after broadcast.
func TxHash(txBytes []byte) string {
	sum := sha256.Sum256(txBytes)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
