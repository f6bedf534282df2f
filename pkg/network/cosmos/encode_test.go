package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func TestPrepareTx_Defaults(t *testing.T) {
	env := PrepareTx([]network.Msg{sendMsg("dys1a")}, "hello", nil)

	require.Equal(t, "hello", env.Body.Memo)
	require.Equal(t, network.DisabledTimeoutHeight, env.Body.TimeoutHeight)
	require.Equal(t, network.DisabledTimeoutTimestamp, env.Body.TimeoutTimestamp)
	require.False(t, env.Body.Unordered)
	require.Empty(t, env.AuthInfo.SignerInfos)
	require.Equal(t, network.DefaultGasLimit, env.AuthInfo.Fee.GasLimit)
	require.NotNil(t, env.AuthInfo.Fee.Amount)
	require.Empty(t, env.Signatures)

	bz, err := json.Marshal(env)
	require.NoError(t, err)
	require.Contains(t, string(bz), `"timeout_timestamp":"0001-01-01T00:00:00Z"`)
	require.Contains(t, string(bz), `"extension_options":[]`)
	require.Contains(t, string(bz), `"amount":[]`)
	require.Contains(t, string(bz), `"tip":null`)
}

func TestPrepareTx_CustomFee(t *testing.T) {
	fee := network.Fee{Amount: []network.Coin{{Denom: "dys", Amount: "5000"}}, GasLimit: "300000"}
	env := PrepareTx([]network.Msg{sendMsg("dys1a")}, "", &fee)

	require.Equal(t, "300000", env.AuthInfo.Fee.GasLimit)
	require.Equal(t, []network.Coin{{Denom: "dys", Amount: "5000"}}, env.AuthInfo.Fee.Amount)
}

func TestAddSignerInfo_ReplacesSigner(t *testing.T) {
	env := PrepareTx([]network.Msg{sendMsg("dys1a")}, "", nil)
	pub := secp256k1.GenPrivKey().PubKey().Bytes()

	AddSignerInfo(env, pub, 3)
	AddSignerInfo(env, pub, 4)

	require.Len(t, env.AuthInfo.SignerInfos, 1)
	si := env.AuthInfo.SignerInfos[0]
	require.Equal(t, "4", si.Sequence)
	require.Equal(t, network.PubKeyTypeSecp256k1, si.PublicKey.Type)
	require.Equal(t, base64.StdEncoding.EncodeToString(pub), si.PublicKey.Key)
	require.Equal(t, network.SignModeDirect, si.ModeInfo.Single.Mode)
}

func TestCanonicalize_MatchesNodeBytes(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	env := PrepareTx([]network.Msg{sendMsg(wallet.Address())}, "memo", nil)
	AddSignerInfo(env, wallet.PubKey(), 7)

	canon, err := client.Canonicalize(context.Background(), env)
	require.NoError(t, err)
	require.Equal(t, node.encodedBody, canon.BodyBytes)
	require.Equal(t, node.encodedAuth, canon.AuthInfoBytes)
	require.NotEmpty(t, canon.TxBytesBase64)
}

func TestCanonicalize_NodeRejects(t *testing.T) {
	node := newFakeNode(t)
	node.set(&node.encode, respond(http.StatusBadRequest, `{"code":3,"message":"unable to resolve type URL /bad.Msg"}`))
	client, _ := newTestClient(t, node)

	_, err := client.Canonicalize(context.Background(), PrepareTx([]network.Msg{{"@type": "/bad.Msg"}}, "", nil))
	require.Error(t, err)

	var ee *network.EncodingError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, http.StatusBadRequest, ee.Status)
	require.Contains(t, ee.Body, "unable to resolve type URL")
}

func TestCanonicalize_GarbageBytes(t *testing.T) {
	node := newFakeNode(t)
	node.set(&node.encode, respond(http.StatusOK, `{"tx_bytes":"`+base64.StdEncoding.EncodeToString([]byte{0xff, 0xff, 0xff})+`"}`))
	client, _ := newTestClient(t, node)

	_, err := client.Canonicalize(context.Background(), PrepareTx(nil, "", nil))
	require.Error(t, err)
	require.True(t, network.IsEncodingError(err))
}

func TestSignTx_VerifiesAndDecodes(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)
	ctx := context.Background()

	env := PrepareTx([]network.Msg{sendMsg(wallet.Address())}, "signed", nil)
	AddSignerInfo(env, wallet.PubKey(), 7)
	canon, err := client.Canonicalize(ctx, env)
	require.NoError(t, err)

	identity := &network.AccountIdentity{ChainID: "dyson-test-1", Address: wallet.Address(), AccountNumber: 42, Sequence: 7}
	txBytes, err := SignTx(ctx, wallet, wallet.Address(), identity, canon)
	require.NoError(t, err)

	decoded, err := DecodeTxRaw(txBytes)
	require.NoError(t, err)
	require.Equal(t, "signed", decoded.Body.Memo)
	require.Len(t, decoded.Body.Messages, 1)
	require.Equal(t, network.MsgTypeBankSend, decoded.Body.Messages[0].TypeURL)
	require.Len(t, decoded.AuthInfo.Signers, 1)
	require.Equal(t, uint64(7), decoded.AuthInfo.Signers[0].Sequence)
	require.Equal(t, "SIGN_MODE_DIRECT", decoded.AuthInfo.Signers[0].Mode)
	require.Equal(t, network.DefaultGasLimit, decoded.AuthInfo.Fee.GasLimit)
	require.Len(t, decoded.Signatures, 1)

	sig, err := base64.StdEncoding.DecodeString(decoded.Signatures[0])
	require.NoError(t, err)
	signBytes, err := SignDocBytes(network.SignDoc{
		BodyBytes:     canon.BodyBytes,
		AuthInfoBytes: canon.AuthInfoBytes,
		ChainID:       "dyson-test-1",
		AccountNumber: 42,
	})
	require.NoError(t, err)
	pub := &secp256k1.PubKey{Key: wallet.PubKey()}
	require.True(t, pub.VerifySignature(signBytes, sig))
}

// echoWallet returns its own bytes in the sign response.
type echoWallet struct {
	*LocalWallet
	body []byte
}

func (w *echoWallet) SignDirect(ctx context.Context, addr string, doc network.SignDoc) (*network.DirectSignResponse, error) {
	resp, err := w.LocalWallet.SignDirect(ctx, addr, doc)
	if err != nil {
		return nil, err
	}
	resp.Signed.BodyBytes = w.body
	return resp, nil
}

func TestSignTx_PrefersWalletBytes(t *testing.T) {
	wallet := &echoWallet{LocalWallet: newTestWallet(t), body: []byte{0x0a, 0x00}}
	canon := &network.CanonicalBytes{BodyBytes: []byte{0x12, 0x00}, AuthInfoBytes: []byte{0x1a, 0x00}}
	identity := &network.AccountIdentity{ChainID: "c", AccountNumber: 1}

	txBytes, err := SignTx(context.Background(), wallet, wallet.Address(), identity, canon)
	require.NoError(t, err)

	decoded, err := DecodeTxRaw(txBytes)
	require.NoError(t, err)
	require.Len(t, decoded.Signatures, 1)

	txBytes2, err := AssembleTxRaw([]byte{0x0a, 0x00}, canon.AuthInfoBytes, mustDecode(t, decoded.Signatures[0]))
	require.NoError(t, err)
	require.Equal(t, txBytes2, txBytes)
}

func TestSignTx_WalletRefuses(t *testing.T) {
	wallet := newTestWallet(t)
	canon := &network.CanonicalBytes{BodyBytes: []byte{}, AuthInfoBytes: []byte{}}

	_, err := SignTx(context.Background(), wallet, "dys1someoneelse", &network.AccountIdentity{}, canon)
	require.Error(t, err)
	require.True(t, network.IsSigningError(err))
}

func TestDecodeTxRaw_Invalid(t *testing.T) {
	_, err := DecodeTxRaw([]byte{0xff, 0xff})
	require.Error(t, err)
}

func TestTxHash(t *testing.T) {
	hash := TxHash([]byte("tx"))
	require.Len(t, hash, 64)
	require.Equal(t, hash, TxHash([]byte("tx")))
	require.NotEqual(t, hash, TxHash([]byte("tx2")))
	require.Regexp(t, `^[0-9A-F]+$`, hash)
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	bz, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	return bz
}
