// pkg/network/cosmos/signing.go
package cosmos

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// SignTx hands the canonical sign document to the wallet and assembles the
// signed transaction. Bytes echoed back by the wallet win over the ones sent.
func SignTx(ctx context.Context, wallet network.Wallet, address string, identity *network.AccountIdentity, canon *network.CanonicalBytes) ([]byte, error) {
	doc := network.SignDoc{
		BodyBytes:     canon.BodyBytes,
		AuthInfoBytes: canon.AuthInfoBytes,
		ChainID:       identity.ChainID,
		AccountNumber: identity.AccountNumber,
		Sequence:      identity.Sequence,
	}

	resp, err := wallet.SignDirect(ctx, address, doc)
	if err != nil {
		return nil, &network.SigningError{Address: address, Err: err}
	}
	if resp == nil {
		return nil, &network.SigningError{Address: address, Err: fmt.Errorf("wallet returned no signature")}
	}

	signature, err := base64.StdEncoding.DecodeString(resp.Signature.Signature)
	if err != nil {
		return nil, &network.SigningError{Address: address, Err: fmt.Errorf("failed to decode signature: %w", err)}
	}

	bodyBytes := canon.BodyBytes
	if len(resp.Signed.BodyBytes) > 0 {
		bodyBytes = resp.Signed.BodyBytes
	}
	authInfoBytes := canon.AuthInfoBytes
	if len(resp.Signed.AuthInfoBytes) > 0 {
		authInfoBytes = resp.Signed.AuthInfoBytes
	}

	return AssembleTxRaw(bodyBytes, authInfoBytes, signature)
}

// SignDocBytes serializes doc the way SIGN_MODE_DIRECT signs it.
func SignDocBytes(doc network.SignDoc) ([]byte, error) {
	sd := &txtypes.SignDoc{
		BodyBytes:     doc.BodyBytes,
		AuthInfoBytes: doc.AuthInfoBytes,
		ChainId:       doc.ChainID,
		AccountNumber: doc.AccountNumber,
	}
	bz, err := sd.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign doc: %w", err)
	}
	return bz, nil
}

// LoadPrivateKey loads a secp256k1 private key from bytes.
// Expects 32 bytes for secp256k1.
func LoadPrivateKey(privKeyBytes []byte) (cryptotypes.PrivKey, error) {
	if len(privKeyBytes) != 32 {
		return nil, fmt.Errorf("invalid private key length: expected 32, got %d", len(privKeyBytes))
	}
	privKey := &secp256k1.PrivKey{Key: privKeyBytes}
	return privKey, nil
}

// SignBytes signs arbitrary bytes with the private key.
func SignBytes(privKey cryptotypes.PrivKey, signDoc []byte) ([]byte, error) {
	signature, err := privKey.Sign(signDoc)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return signature, nil
}
