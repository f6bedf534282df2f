// pkg/network/txbuilder.go
package network

import (
	"encoding/json"
	"time"
)

// DefaultGasLimit is used when the caller supplies no fee.
const DefaultGasLimit = "200000"

// Sentinel values for a disabled transaction timeout.
const (
	DisabledTimeoutHeight    = "0"
	DisabledTimeoutTimestamp = "0001-01-01T00:00:00Z"
)

// PubKeyTypeSecp256k1 is the type url of the only supported signer key type.
const PubKeyTypeSecp256k1 = "/cosmos.crypto.secp256k1.PubKey"

// SignModeDirect is the only supported sign mode.
const SignModeDirect = "SIGN_MODE_DIRECT"

// Msg is an opaque, self-describing message. The "@type" key carries its type url.
// The lifecycle never interprets any other field.
type Msg map[string]any

// TypeURL returns the message's "@type" tag or "" if missing.
func (m Msg) TypeURL() string {
	if s, ok := m["@type"].(string); ok {
		return s
	}
	return ""
}

// MsgTypes collects the type urls of msgs in order.
func MsgTypes(msgs []Msg) []string {
	types := make([]string, len(msgs))
	for i, m := range msgs {
		types[i] = m.TypeURL()
	}
	return types
}

// Coin is a denom/amount pair. Amount stays a decimal string on the wire.
type Coin struct {
	Denom  string `json:"denom" yaml:"denom"`
	Amount string `json:"amount" yaml:"amount"`
}

// Fee is the transaction fee. GasLimit is a decimal string as on the wire.
type Fee struct {
	Amount   []Coin `json:"amount" yaml:"amount"`
	GasLimit string `json:"gas_limit" yaml:"gas_limit"`
	Payer    string `json:"payer,omitempty" yaml:"payer,omitempty"`
	Granter  string `json:"granter,omitempty" yaml:"granter,omitempty"`
}

// DefaultFee returns an empty-amount fee with DefaultGasLimit.
func DefaultFee() Fee {
	return Fee{Amount: []Coin{}, GasLimit: DefaultGasLimit}
}

// Envelope is the unsigned transaction in the node's JSON shape.
type Envelope struct {
	Body       TxBody   `json:"body"`
	AuthInfo   AuthInfo `json:"auth_info"`
	Signatures []string `json:"signatures"`
}

// TxBody holds the messages and memo.
type TxBody struct {
	Messages                    []Msg             `json:"messages"`
	Memo                        string            `json:"memo"`
	TimeoutHeight               string            `json:"timeout_height"`
	Unordered                   bool              `json:"unordered"`
	TimeoutTimestamp            string            `json:"timeout_timestamp"`
	ExtensionOptions            []json.RawMessage `json:"extension_options"`
	NonCriticalExtensionOptions []json.RawMessage `json:"non_critical_extension_options"`
}

// AuthInfo holds signer metadata and the fee.
type AuthInfo struct {
	SignerInfos []SignerInfo     `json:"signer_infos"`
	Fee         Fee              `json:"fee"`
	Tip         *json.RawMessage `json:"tip"`
}

// SignerInfo describes the single signer of a transaction.
type SignerInfo struct {
	PublicKey PublicKey `json:"public_key"`
	ModeInfo  ModeInfo  `json:"mode_info"`
	Sequence  string    `json:"sequence"`
}

// PublicKey is a type-tagged base64 key.
type PublicKey struct {
	Type string `json:"@type"`
	Key  string `json:"key"`
}

// ModeInfo selects the sign mode.
type ModeInfo struct {
	Single SingleMode `json:"single"`
}

// SingleMode is a single-signer sign mode.
type SingleMode struct {
	Mode string `json:"mode"`
}

// AccountIdentity binds a transaction to the chain and account state.
type AccountIdentity struct {
	ChainID       string `json:"chain_id" yaml:"chain_id"`
	Address       string `json:"address" yaml:"address"`
	AccountNumber uint64 `json:"account_number" yaml:"account_number"`
	Sequence      uint64 `json:"sequence" yaml:"sequence"`
}

// CanonicalBytes are the node-encoded body and auth info sections.
type CanonicalBytes struct {
	BodyBytes     []byte
	AuthInfoBytes []byte

	// TxBytesBase64 is the whole unsigned tx as returned by the node.
	TxBytesBase64 string
}

// SignDoc is the payload handed to a wallet for direct signing.
type SignDoc struct {
	BodyBytes     []byte
	AuthInfoBytes []byte
	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}

// WalletAccount is one account a wallet can sign for.
type WalletAccount struct {
	Address string
	PubKey  []byte
}

// DirectSignResponse is what a wallet returns from SignDirect.
// Signed.BodyBytes and Signed.AuthInfoBytes may be empty, in which case the
// bytes that were sent for signing are used.
type DirectSignResponse struct {
	Signed    SignDoc
	Signature StdSignature
}

// StdSignature is a detached signature.
type StdSignature struct {
	PubKey    PublicKey
	Signature string // base64
}

// DecodedTx is a signed transaction split back into its parts.
type DecodedTx struct {
	Body       DecodedBody     `json:"body" yaml:"body"`
	AuthInfo   DecodedAuthInfo `json:"auth_info" yaml:"auth_info"`
	Signatures []string        `json:"signatures" yaml:"signatures"`
}

// DecodedBody is the readable form of a decoded tx body.
type DecodedBody struct {
	Messages      []DecodedAny `json:"messages" yaml:"messages"`
	Memo          string       `json:"memo" yaml:"memo"`
	TimeoutHeight uint64       `json:"timeout_height" yaml:"timeout_height"`
}

// DecodedAny is a packed message reported by its type url and raw value.
type DecodedAny struct {
	TypeURL string `json:"type_url" yaml:"type_url"`
	Value   string `json:"value" yaml:"value"` // base64
}

// DecodedAuthInfo is the readable form of a decoded auth info.
type DecodedAuthInfo struct {
	Signers []DecodedSigner `json:"signer_infos" yaml:"signer_infos"`
	Fee     Fee             `json:"fee" yaml:"fee"`
}

// DecodedSigner is the readable form of a decoded signer info.
type DecodedSigner struct {
	PubKeyType string `json:"public_key_type" yaml:"public_key_type"`
	PubKey     string `json:"public_key" yaml:"public_key"` // base64 of the packed key
	Mode       string `json:"mode" yaml:"mode"`
	Sequence   uint64 `json:"sequence" yaml:"sequence"`
}

// ClientConfig configures client creation.
type ClientConfig struct {
	// APIURL is the node's REST (LCD) base url.
	APIURL string `json:"apiUrl"`

	// Timeout bounds each HTTP round-trip. Zero means 30s.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Poll overrides DefaultPollPolicy when non-nil.
	Poll *PollPolicy `json:"poll,omitempty"`
}

// PollPolicy bounds settlement polling after a broadcast.
type PollPolicy struct {
	Attempts uint          `json:"attempts"`
	Interval time.Duration `json:"interval"`
}

// DefaultPollPolicy returns 10 attempts spaced 1 second apart.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{Attempts: 10, Interval: time.Second}
}
