// pkg/network/cosmos/msgs.go
package cosmos

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/altuslabsxyz/dwapp/pkg/network"
)

// BankSendPayload contains the fields for a bank send transaction.
type BankSendPayload struct {
	// ToAddress is the recipient's bech32 address.
	ToAddress string `json:"to_address"`
	// Amount is the amount to send (e.g., "1000dys").
	Amount string `json:"amount"`
}

// ScriptExecPayload contains the fields for a script call.
type ScriptExecPayload struct {
	ScriptAddress    string        `json:"script_address"`
	FunctionName     string        `json:"function_name"`
	Args             string        `json:"args"`
	Kwargs           string        `json:"kwargs"`
	ExtraCode        string        `json:"extra_code"`
	AttachedMessages []network.Msg `json:"attached_messages"`
}

// StorageSetPayload writes data under index.
type StorageSetPayload struct {
	Index string `json:"index"`
	Data  string `json:"data"`
}

// StorageDeletePayload removes the listed indexes.
type StorageDeletePayload struct {
	Indexes []string `json:"indexes"`
}

// CrontaskCreatePayload schedules msgs for later execution.
// Timestamps are unix seconds; an expiry of 0 means none.
type CrontaskCreatePayload struct {
	ScheduledTimestamp int64         `json:"scheduled_timestamp"`
	ExpiryTimestamp    int64         `json:"expiry_timestamp"`
	GasLimit           uint64        `json:"gas_limit"`
	GasFee             string        `json:"gas_fee"`
	Msgs               []network.Msg `json:"msgs"`
}

// CrontaskDeletePayload removes a scheduled task.
type CrontaskDeletePayload struct {
	TaskID string `json:"task_id"`
}

// NameCommitPayload commits to a name registration. When Hexhash is empty it
// is derived from Name and Salt.
type NameCommitPayload struct {
	Name      string `json:"name"`
	Salt      string `json:"salt"`
	Hexhash   string `json:"hexhash"`
	Valuation string `json:"valuation"`
}

// NameRevealPayload reveals a previously committed name.
type NameRevealPayload struct {
	Name string `json:"name"`
	Salt string `json:"salt"`
}

// NameSetDestinationPayload points a name at an address.
type NameSetDestinationPayload struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
}

// NameSetValuationPayload sets the valuation of a name NFT.
type NameSetValuationPayload struct {
	NFTClassID string `json:"nft_class_id"`
	NFTID      string `json:"nft_id"`
	Valuation  string `json:"valuation"`
}

// BuildMessage creates a message from the given transaction type and payload.
// sender fills the type's signer field.
func BuildMessage(txType network.TxType, sender string, payload json.RawMessage) (network.Msg, error) {
	if sender == "" {
		return nil, fmt.Errorf("sender is required")
	}

	switch txType {
	case network.TxTypeBankSend:
		var p BankSendPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		coin, err := ParseAmount(p.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		return NewMsgSend(sender, p.ToAddress, coin), nil

	case network.TxTypeScriptExec:
		var p ScriptExecPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		return NewMsgExec(ScriptCall{
			ExecutorAddress:  sender,
			ScriptAddress:    p.ScriptAddress,
			FunctionName:     p.FunctionName,
			Args:             p.Args,
			Kwargs:           p.Kwargs,
			ExtraCode:        p.ExtraCode,
			AttachedMessages: p.AttachedMessages,
		})

	case network.TxTypeStorageSet:
		var p StorageSetPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		return NewMsgStorageSet(sender, p.Index, p.Data), nil

	case network.TxTypeStorageDelete:
		var p StorageDeletePayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		if len(p.Indexes) == 0 {
			return nil, fmt.Errorf("at least one index is required")
		}
		return NewMsgStorageDelete(sender, p.Indexes...), nil

	case network.TxTypeCrontaskCreate:
		var p CrontaskCreatePayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		fee, err := ParseAmount(p.GasFee)
		if err != nil {
			return nil, fmt.Errorf("failed to parse gas fee: %w", err)
		}
		return NewMsgCreateTask(sender, p.ScheduledTimestamp, p.ExpiryTimestamp, p.GasLimit, fee, p.Msgs), nil

	case network.TxTypeCrontaskDelete:
		var p CrontaskDeletePayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		return NewMsgDeleteTask(sender, p.TaskID), nil

	case network.TxTypeNameCommit:
		var p NameCommitPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		valuation, err := ParseAmount(p.Valuation)
		if err != nil {
			return nil, fmt.Errorf("failed to parse valuation: %w", err)
		}
		hexhash := p.Hexhash
		if hexhash == "" {
			if p.Name == "" || p.Salt == "" {
				return nil, fmt.Errorf("either hexhash or name and salt are required")
			}
			hexhash = CommitHash(p.Name, sender, p.Salt)
		}
		return NewMsgCommit(sender, hexhash, valuation), nil

	case network.TxTypeNameReveal:
		var p NameRevealPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		return NewMsgReveal(sender, p.Name, p.Salt), nil

	case network.TxTypeNameSetDestination:
		var p NameSetDestinationPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		return NewMsgSetDestination(sender, p.Name, p.Destination), nil

	case network.TxTypeNameSetValuation:
		var p NameSetValuationPayload
		if err := unmarshalPayload(txType, payload, &p); err != nil {
			return nil, err
		}
		valuation, err := ParseAmount(p.Valuation)
		if err != nil {
			return nil, fmt.Errorf("failed to parse valuation: %w", err)
		}
		return NewMsgSetValuation(sender, p.NFTClassID, p.NFTID, valuation), nil

	default:
		return nil, fmt.Errorf("unsupported transaction type: %s", txType)
	}
}

func unmarshalPayload(txType network.TxType, payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", txType, err)
	}
	return nil
}

func coinJSON(c sdk.Coin) map[string]any {
	return map[string]any{"denom": c.Denom, "amount": c.Amount.String()}
}

// NewMsgSend builds a bank send.
func NewMsgSend(from, to string, amount ...sdk.Coin) network.Msg {
	coins := make([]any, len(amount))
	for i, c := range amount {
		coins[i] = coinJSON(c)
	}
	return network.Msg{
		"@type":        network.MsgTypeBankSend,
		"from_address": from,
		"to_address":   to,
		"amount":       coins,
	}
}

// NewMsgStorageSet builds a storage write.
func NewMsgStorageSet(owner, index, data string) network.Msg {
	return network.Msg{
		"@type": network.MsgTypeStorageSet,
		"owner": owner,
		"index": index,
		"data":  data,
	}
}

// NewMsgStorageDelete builds a storage delete.
func NewMsgStorageDelete(owner string, indexes ...string) network.Msg {
	list := make([]any, len(indexes))
	for i, idx := range indexes {
		list[i] = idx
	}
	return network.Msg{
		"@type":   network.MsgTypeStorageDelete,
		"owner":   owner,
		"indexes": list,
	}
}

// NewMsgCreateTask builds a crontask creation.
func NewMsgCreateTask(creator string, scheduled, expiry int64, gasLimit uint64, gasFee sdk.Coin, msgs []network.Msg) network.Msg {
	inner := make([]any, len(msgs))
	for i, m := range msgs {
		inner[i] = map[string]any(m)
	}
	return network.Msg{
		"@type":               network.MsgTypeCrontaskCreate,
		"creator":             creator,
		"scheduled_timestamp": strconv.FormatInt(scheduled, 10),
		"expiry_timestamp":    strconv.FormatInt(expiry, 10),
		"task_gas_limit":      strconv.FormatUint(gasLimit, 10),
		"task_gas_fee":        coinJSON(gasFee),
		"msgs":                inner,
	}
}

// NewMsgDeleteTask builds a crontask deletion.
func NewMsgDeleteTask(creator, taskID string) network.Msg {
	return network.Msg{
		"@type":   network.MsgTypeCrontaskDelete,
		"creator": creator,
		"task_id": taskID,
	}
}

// NewMsgCommit builds a name commit.
func NewMsgCommit(committer, hexhash string, valuation sdk.Coin) network.Msg {
	return network.Msg{
		"@type":     network.MsgTypeNameCommit,
		"committer": committer,
		"hexhash":   hexhash,
		"valuation": coinJSON(valuation),
	}
}

// NewMsgReveal builds a name reveal.
func NewMsgReveal(committer, name, salt string) network.Msg {
	return network.Msg{
		"@type":     network.MsgTypeNameReveal,
		"committer": committer,
		"name":      name,
		"salt":      salt,
	}
}

// NewMsgSetDestination builds a destination update.
func NewMsgSetDestination(owner, name, destination string) network.Msg {
	return network.Msg{
		"@type":       network.MsgTypeNameSetDestination,
		"owner":       owner,
		"name":        name,
		"destination": strings.TrimSpace(destination),
	}
}

// NewMsgSetValuation builds a valuation update.
func NewMsgSetValuation(owner, classID, nftID string, valuation sdk.Coin) network.Msg {
	return network.Msg{
		"@type":        network.MsgTypeNameSetValuation,
		"owner":        owner,
		"nft_class_id": classID,
		"nft_id":       nftID,
		"valuation":    coinJSON(valuation),
	}
}

// CommitHash is the hex SHA-256 of "name:committer:salt" used by name commits.
func CommitHash(name, committer, salt string) string {
	sum := sha256.Sum256([]byte(name + ":" + committer + ":" + salt))
	return hex.EncodeToString(sum[:])
}

// NewSalt returns a random salt for a name commit.
func NewSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

var (
	gasPricePattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([a-zA-Z][a-zA-Z0-9/]*)$`)
	amountPattern   = regexp.MustCompile(`^(\d+)([a-zA-Z][a-zA-Z0-9/]*)$`)
)

// ParseGasPrice parses a gas price string like "0.025dys" into a DecCoin.
func ParseGasPrice(s string) (sdk.DecCoin, error) {
	if s == "" {
		return sdk.DecCoin{}, fmt.Errorf("gas price cannot be empty")
	}

	matches := gasPricePattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return sdk.DecCoin{}, fmt.Errorf("invalid gas price format: %s (expected format like '0.025dys')", s)
	}

	if err := sdk.ValidateDenom(matches[2]); err != nil {
		return sdk.DecCoin{}, fmt.Errorf("invalid gas price denom: %w", err)
	}

	// LegacyNewDecFromStr wants digits on both sides of the point.
	amountStr := strings.TrimSuffix(matches[1], ".")
	if strings.HasPrefix(amountStr, ".") {
		amountStr = "0" + amountStr
	}

	amount, err := sdkmath.LegacyNewDecFromStr(amountStr)
	if err != nil {
		return sdk.DecCoin{}, fmt.Errorf("failed to parse gas price amount: %w", err)
	}

	return sdk.NewDecCoinFromDec(matches[2], amount), nil
}

// ParseAmount parses an amount string like "1000dys" into a Coin. A bare
// integer uses DefaultDenom.
func ParseAmount(s string) (sdk.Coin, error) {
	if s == "" {
		return sdk.Coin{}, fmt.Errorf("amount cannot be empty")
	}

	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		s += DefaultDenom
	}

	matches := amountPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return sdk.Coin{}, fmt.Errorf("invalid amount format: %s (expected format like '1000dys')", s)
	}

	if err := sdk.ValidateDenom(matches[2]); err != nil {
		return sdk.Coin{}, fmt.Errorf("invalid denom: %w", err)
	}

	amount, ok := sdkmath.NewIntFromString(matches[1])
	if !ok {
		return sdk.Coin{}, fmt.Errorf("failed to parse amount: %s", matches[1])
	}

	return sdk.NewCoin(matches[2], amount), nil
}

// BuildFee computes floor(gasLimit * gasPrice) in the price's denom. An empty
// gas price yields a fee with no amount.
func BuildFee(gasLimit uint64, gasPrice string) (network.Fee, error) {
	fee := network.Fee{
		Amount:   []network.Coin{},
		GasLimit: strconv.FormatUint(gasLimit, 10),
	}
	if gasPrice == "" {
		return fee, nil
	}

	price, err := ParseGasPrice(gasPrice)
	if err != nil {
		return network.Fee{}, err
	}
	if price.IsZero() {
		return fee, nil
	}

	amount := price.Amount.MulInt(sdkmath.NewIntFromUint64(gasLimit)).TruncateInt()
	fee.Amount = append(fee.Amount, network.Coin{Denom: price.Denom, Amount: amount.String()})
	return fee, nil
}
