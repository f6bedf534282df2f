package cosmos

import (
	"encoding/base64"
	"encoding/json"
	"strconv"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// PrepareTx assembles an unsigned envelope. A nil fee means network.DefaultFee.
// Timeouts are disabled and no signer is attached yet.
func PrepareTx(msgs []network.Msg, memo string, fee *network.Fee) *network.Envelope {
	f := network.DefaultFee()
	if fee != nil {
		f = *fee
	}
	if f.Amount == nil {
		f.Amount = []network.Coin{}
	}
	if f.GasLimit == "" {
		f.GasLimit = network.DefaultGasLimit
	}

	if msgs == nil {
		msgs = []network.Msg{}
	}

	return &network.Envelope{
		Body: network.TxBody{
			Messages:                    msgs,
			Memo:                        memo,
			TimeoutHeight:               network.DisabledTimeoutHeight,
			Unordered:                   false,
			TimeoutTimestamp:            network.DisabledTimeoutTimestamp,
			ExtensionOptions:            []json.RawMessage{},
			NonCriticalExtensionOptions: []json.RawMessage{},
		},
		AuthInfo: network.AuthInfo{
			SignerInfos: []network.SignerInfo{},
			Fee:         f,
		},
		Signatures: []string{},
	}
}

// AddSignerInfo sets the envelope's single signer to a secp256k1 key in
// direct mode at the given sequence. Calling it again replaces the signer.
func AddSignerInfo(env *network.Envelope, pubKey []byte, sequence uint64) {
	env.AuthInfo.SignerInfos = []network.SignerInfo{
		{
			PublicKey: network.PublicKey{
				Type: network.PubKeyTypeSecp256k1,
				Key:  base64.StdEncoding.EncodeToString(pubKey),
			},
			ModeInfo: network.ModeInfo{
				Single: network.SingleMode{Mode: network.SignModeDirect},
			},
			Sequence: strconv.FormatUint(sequence, 10),
		},
	}
}
