package cosmos

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func TestEstimateGas(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	limit, err := client.EstimateGas(context.Background(), wallet, []network.Msg{sendMsg(wallet.Address())}, GasSettings{}, network.SendOptions{})
	require.NoError(t, err)
	require.Equal(t, uint64(120000), limit)
	require.Equal(t, int32(1), node.simulations.Load())
	require.Equal(t, int32(0), node.broadcasts.Load())
}

func TestEstimateGas_RoundsUp(t *testing.T) {
	node := newFakeNode(t)
	node.set(&node.simulate, respond(http.StatusOK, `{"gas_info":{"gas_used":"1001"},"result":{"events":[{"type":"message","attributes":[{"key":"action","value":"/cosmos.bank.v1beta1.MsgSend"}]}]}}`))
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	limit, err := client.EstimateGas(context.Background(), wallet, []network.Msg{sendMsg(wallet.Address())}, GasSettings{Adjustment: "1.5"}, network.SendOptions{})
	require.NoError(t, err)
	require.Equal(t, uint64(1502), limit)
}

func TestEstimateGas_ZeroFallsBackToDefault(t *testing.T) {
	node := newFakeNode(t)
	node.set(&node.simulate, respond(http.StatusOK, `{"gas_info":{"gas_used":"0"},"result":{"events":[{"type":"message","attributes":[{"key":"action","value":"/cosmos.bank.v1beta1.MsgSend"}]}]}}`))
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	limit, err := client.EstimateGas(context.Background(), wallet, []network.Msg{sendMsg(wallet.Address())}, GasSettings{}, network.SendOptions{})
	require.NoError(t, err)
	require.Equal(t, uint64(200000), limit)
}

func TestEstimateGas_SimulationFails(t *testing.T) {
	node := newFakeNode(t)
	node.set(&node.simulate, respond(http.StatusBadRequest, `{"code":13,"message":"insufficient funds"}`))
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	_, err := client.EstimateGas(context.Background(), wallet, []network.Msg{sendMsg(wallet.Address())}, GasSettings{}, network.SendOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "gas estimation failed, code: [1] insufficient funds")
}

func TestEstimateGas_BadAdjustment(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)

	_, err := client.EstimateGas(context.Background(), newTestWallet(t), nil, GasSettings{Adjustment: "-1"}, network.SendOptions{})
	require.Error(t, err)
	require.Equal(t, int32(0), node.simulations.Load())
}

func TestSendAuto(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	res, err := client.SendAuto(context.Background(), wallet, []network.Msg{sendMsg(wallet.Address())}, GasSettings{Price: "0.025dys"}, network.SendOptions{})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, int32(1), node.simulations.Load())
	require.Equal(t, int32(1), node.broadcasts.Load())

	decoded, err := DecodeTxRaw(node.broadcastTx)
	require.NoError(t, err)
	require.Equal(t, "120000", decoded.AuthInfo.Fee.GasLimit)
	require.Equal(t, []network.Coin{{Denom: "dys", Amount: "3000"}}, decoded.AuthInfo.Fee.Amount)

	simulated, err := DecodeTxRaw(node.simulatedTx)
	require.NoError(t, err)
	require.Equal(t, network.DefaultGasLimit, simulated.AuthInfo.Fee.GasLimit)
	require.Equal(t, []network.Coin{{Denom: "dys", Amount: "5000"}}, simulated.AuthInfo.Fee.Amount)
}

func TestSignArbitraryData(t *testing.T) {
	node := newFakeNode(t)
	client, _ := newTestClient(t, node)
	wallet := newTestWallet(t)

	signed, err := client.SignArbitraryData(context.Background(), wallet, "login:nonce-123")
	require.NoError(t, err)
	require.Equal(t, int32(0), node.broadcasts.Load())
	require.Equal(t, int32(0), node.simulations.Load())

	txBytes, err := base64.StdEncoding.DecodeString(signed)
	require.NoError(t, err)
	decoded, err := DecodeTxRaw(txBytes)
	require.NoError(t, err)
	require.Equal(t, network.MsgTypeSignArbitraryData, decoded.Body.Messages[0].TypeURL)
	require.Equal(t, "0", decoded.AuthInfo.Fee.GasLimit)
	require.Empty(t, decoded.AuthInfo.Fee.Amount)
	require.Equal(t, uint64(0), decoded.AuthInfo.Signers[0].Sequence)

	signBytes, err := SignDocBytes(network.SignDoc{
		BodyBytes:     node.encodedBody,
		AuthInfoBytes: node.encodedAuth,
		ChainID:       "",
		AccountNumber: 42,
	})
	require.NoError(t, err)
	pub := &secp256k1.PubKey{Key: wallet.PubKey()}
	require.True(t, pub.VerifySignature(signBytes, mustDecode(t, decoded.Signatures[0])))
}
