package cosmos

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/cosmos/go-bip39"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

const (
	// DefaultBech32Prefix is the account address prefix of the Dyson chain.
	DefaultBech32Prefix = "dys"

	// DefaultHDPath is the standard Cosmos derivation path (coin type 118).
	DefaultHDPath = "m/44'/118'/0'/0/0"

	// DefaultDenom is the chain's fee and staking denom.
	DefaultDenom = "dys"
)

// LocalWallet signs with an in-memory secp256k1 key. It is the CLI's stand-in
// for a browser wallet and satisfies network.Wallet.
type LocalWallet struct {
	priv    cryptotypes.PrivKey
	address string
}

// NewMnemonic generates a fresh 24-word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NewLocalWallet derives a key from mnemonic along hdPath. Empty prefix and
// path fall back to DefaultBech32Prefix and DefaultHDPath.
func NewLocalWallet(mnemonic, prefix, hdPath string) (*LocalWallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	if hdPath == "" {
		hdPath = DefaultHDPath
	}

	derived, err := hd.Secp256k1.Derive()(mnemonic, "", hdPath)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return newLocalWallet(hd.Secp256k1.Generate()(derived), prefix)
}

// NewLocalWalletFromKey wraps a raw 32-byte secp256k1 private key.
func NewLocalWalletFromKey(privKeyBytes []byte, prefix string) (*LocalWallet, error) {
	priv, err := LoadPrivateKey(privKeyBytes)
	if err != nil {
		return nil, err
	}
	return newLocalWallet(priv, prefix)
}

func newLocalWallet(priv cryptotypes.PrivKey, prefix string) (*LocalWallet, error) {
	if prefix == "" {
		prefix = DefaultBech32Prefix
	}
	address, err := bech32.ConvertAndEncode(prefix, priv.PubKey().Address().Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to encode address: %w", err)
	}
	return &LocalWallet{priv: priv, address: address}, nil
}

// Address returns the wallet's bech32 account address.
func (w *LocalWallet) Address() string {
	return w.address
}

// PubKey returns the compressed secp256k1 public key.
func (w *LocalWallet) PubKey() []byte {
	return w.priv.PubKey().Bytes()
}

// Accounts returns the wallet's only account.
func (w *LocalWallet) Accounts(_ context.Context) ([]network.WalletAccount, error) {
	return []network.WalletAccount{{Address: w.address, PubKey: w.PubKey()}}, nil
}

// SignDirect signs doc in SIGN_MODE_DIRECT. The document is returned unchanged.
func (w *LocalWallet) SignDirect(_ context.Context, signerAddress string, doc network.SignDoc) (*network.DirectSignResponse, error) {
	if signerAddress != w.address {
		return nil, fmt.Errorf("wallet cannot sign for %s", signerAddress)
	}

	bz, err := SignDocBytes(doc)
	if err != nil {
		return nil, err
	}

	sig, err := SignBytes(w.priv, bz)
	if err != nil {
		return nil, err
	}

	return &network.DirectSignResponse{
		Signed: doc,
		Signature: network.StdSignature{
			PubKey: network.PublicKey{
				Type: network.PubKeyTypeSecp256k1,
				Key:  base64.StdEncoding.EncodeToString(w.PubKey()),
			},
			Signature: base64.StdEncoding.EncodeToString(sig),
		},
	}, nil
}

// ValidateAddress checks that address is bech32 with the expected prefix.
func ValidateAddress(address, prefix string) error {
	hrp, _, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", address, err)
	}
	if prefix != "" && hrp != prefix {
		return fmt.Errorf("invalid address %q: expected prefix %q, got %q", address, prefix, hrp)
	}
	return nil
}

// Ensure LocalWallet fully implements network.Wallet.
var _ network.Wallet = (*LocalWallet)(nil)
