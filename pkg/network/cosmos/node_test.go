package cosmos

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// instantTimer fires immediately and counts waits between poll attempts.
type instantTimer struct {
	waits atomic.Int32
}

func (t *instantTimer) After(time.Duration) <-chan time.Time {
	t.waits.Add(1)
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// fakeNode is an in-process stand-in for a Cosmos REST endpoint. Each
// handler can be replaced per test.
type fakeNode struct {
	t      *testing.T
	server *httptest.Server

	chainID string

	mu            sync.Mutex
	account       http.HandlerFunc
	encode        http.HandlerFunc
	simulate      http.HandlerFunc
	broadcast     http.HandlerFunc
	getTx         http.HandlerFunc
	encodedBody   []byte
	encodedAuth   []byte
	broadcastTx   []byte
	simulatedTx   []byte
	broadcasts    atomic.Int32
	simulations   atomic.Int32
	txLookups     atomic.Int32
	accountLookup atomic.Int32
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()

	n := &fakeNode{t: t, chainID: "dyson-test-1"}
	n.account = respond(http.StatusOK, `{"info":{"address":"dys1test","account_number":"42","sequence":"7"}}`)
	n.encode = n.encodeEnvelope
	n.simulate = respond(http.StatusOK, `{"gas_info":{"gas_wanted":"0","gas_used":"80000"},"result":{"log":"","events":[{"type":"message","attributes":[{"key":"action","value":"/cosmos.bank.v1beta1.MsgSend"}]}]}}`)
	n.broadcast = respond(http.StatusOK, `{"tx_response":{"txhash":"ABCDEF","code":0,"raw_log":""}}`)
	n.getTx = respond(http.StatusOK, `{"tx_response":{"txhash":"ABCDEF","code":0,"gas_used":"91234","raw_log":"","events":[{"type":"message","attributes":[{"key":"action","value":"/cosmos.bank.v1beta1.MsgSend"}]}]}}`)

	mux := http.NewServeMux()
	mux.HandleFunc("/cosmos/base/tendermint/v1beta1/node_info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"default_node_info":{"network":"`+n.chainID+`","moniker":"node0"},"application_version":{"app_name":"dysond","version":"1.0.0","cosmos_sdk_version":"v0.53.4"}}`)
	})
	mux.HandleFunc("/cosmos/auth/v1beta1/account_info/", func(w http.ResponseWriter, r *http.Request) {
		n.accountLookup.Add(1)
		n.handler(&n.account)(w, r)
	})
	mux.HandleFunc("/cosmos/tx/v1beta1/encode", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		n.handler(&n.encode)(w, r)
	})
	mux.HandleFunc("/cosmos/tx/v1beta1/simulate", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		n.simulations.Add(1)
		n.recordTx(r, &n.simulatedTx)
		n.handler(&n.simulate)(w, r)
	})
	mux.HandleFunc("/cosmos/tx/v1beta1/txs", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		n.broadcasts.Add(1)
		n.recordTx(r, &n.broadcastTx)
		n.handler(&n.broadcast)(w, r)
	})
	mux.HandleFunc("/cosmos/tx/v1beta1/txs/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		n.txLookups.Add(1)
		n.handler(&n.getTx)(w, r)
	})

	n.server = httptest.NewServer(mux)
	t.Cleanup(n.server.Close)
	return n
}

func (n *fakeNode) handler(h *http.HandlerFunc) http.HandlerFunc {
	n.mu.Lock()
	defer n.mu.Unlock()
	return *h
}

func (n *fakeNode) set(h *http.HandlerFunc, fn http.HandlerFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	*h = fn
}

// recordTx stores the decoded tx_bytes of a submit request and restores the
// body for the handler.
func (n *fakeNode) recordTx(r *http.Request, dst *[]byte) {
	body, err := io.ReadAll(r.Body)
	require.NoError(n.t, err)
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	var req struct {
		TxBytes string `json:"tx_bytes"`
		Mode    string `json:"mode"`
	}
	require.NoError(n.t, json.Unmarshal(body, &req))
	raw, err := base64.StdEncoding.DecodeString(req.TxBytes)
	require.NoError(n.t, err)

	n.mu.Lock()
	*dst = raw
	n.mu.Unlock()
}

// encodeEnvelope mimics the node's encode endpoint: it packs each message as
// an Any and returns the protobuf Tx.
func (n *fakeNode) encodeEnvelope(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tx network.Envelope `json:"tx"`
	}
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))
	env := req.Tx

	body := &txtypes.TxBody{Memo: env.Body.Memo}
	for _, m := range env.Body.Messages {
		value, err := json.Marshal(m)
		require.NoError(n.t, err)
		body.Messages = append(body.Messages, &codectypes.Any{TypeUrl: m.TypeURL(), Value: value})
	}

	gasLimit, err := strconv.ParseUint(env.AuthInfo.Fee.GasLimit, 10, 64)
	require.NoError(n.t, err)
	fee := &txtypes.Fee{GasLimit: gasLimit, Payer: env.AuthInfo.Fee.Payer, Granter: env.AuthInfo.Fee.Granter}
	for _, c := range env.AuthInfo.Fee.Amount {
		amount, ok := sdkmath.NewIntFromString(c.Amount)
		require.True(n.t, ok)
		fee.Amount = append(fee.Amount, sdk.Coin{Denom: c.Denom, Amount: amount})
	}

	authInfo := &txtypes.AuthInfo{Fee: fee}
	for _, si := range env.AuthInfo.SignerInfos {
		key, err := base64.StdEncoding.DecodeString(si.PublicKey.Key)
		require.NoError(n.t, err)
		pk, err := (&secp256k1.PubKey{Key: key}).Marshal()
		require.NoError(n.t, err)
		seq, err := strconv.ParseUint(si.Sequence, 10, 64)
		require.NoError(n.t, err)
		authInfo.SignerInfos = append(authInfo.SignerInfos, &txtypes.SignerInfo{
			PublicKey: &codectypes.Any{TypeUrl: si.PublicKey.Type, Value: pk},
			ModeInfo: &txtypes.ModeInfo{
				Sum: &txtypes.ModeInfo_Single_{Single: &txtypes.ModeInfo_Single{Mode: signing.SignMode_SIGN_MODE_DIRECT}},
			},
			Sequence: seq,
		})
	}

	bodyBytes, err := body.Marshal()
	require.NoError(n.t, err)
	authBytes, err := authInfo.Marshal()
	require.NoError(n.t, err)

	n.mu.Lock()
	n.encodedBody, n.encodedAuth = bodyBytes, authBytes
	n.mu.Unlock()

	tx := &txtypes.Tx{Body: body, AuthInfo: authInfo}
	bz, err := tx.Marshal()
	require.NoError(n.t, err)

	writeJSON(w, http.StatusOK, `{"tx_bytes":"`+base64.StdEncoding.EncodeToString(bz)+`"}`)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	}
}

// foundAfter answers "not found" for the first n lookups and body afterwards.
func foundAfter(n int32, counter *atomic.Int32, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if counter.Load() <= n {
			writeJSON(w, http.StatusNotFound, `{"code":5,"message":"tx not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(t *testing.T, node *fakeNode) (*Client, *instantTimer) {
	t.Helper()
	timer := &instantTimer{}
	client, err := NewClient(&network.ClientConfig{APIURL: node.server.URL}, WithTimer(timer))
	require.NoError(t, err)
	return client, timer
}

func newTestWallet(t *testing.T) *LocalWallet {
	t.Helper()
	wallet, err := NewLocalWallet(testMnemonic, DefaultBech32Prefix, DefaultHDPath)
	require.NoError(t, err)
	return wallet
}

func sendMsg(from string) network.Msg {
	return network.Msg{
		"@type":        network.MsgTypeBankSend,
		"from_address": from,
		"to_address":   "dys1recipient",
		"amount":       []any{map[string]any{"denom": "dys", "amount": "1000"}},
	}
}
