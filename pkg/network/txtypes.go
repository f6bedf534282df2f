package network

// TxType identifies a category of message that can be built from a typed payload.
type TxType string

// Transaction types with typed constructors.
const (
	TxTypeBankSend              TxType = "bank/send"
	TxTypeScriptExec            TxType = "script/exec"
	TxTypeStorageSet            TxType = "storage/set"
	TxTypeStorageDelete         TxType = "storage/delete"
	TxTypeCrontaskCreate        TxType = "crontask/create"
	TxTypeCrontaskDelete        TxType = "crontask/delete"
	TxTypeNameCommit            TxType = "nameservice/commit"
	TxTypeNameReveal            TxType = "nameservice/reveal"
	TxTypeNameSetDestination    TxType = "nameservice/set-destination"
	TxTypeNameSetValuation      TxType = "nameservice/set-valuation"
	TxTypeOffchainSignArbitrary TxType = "offchain/sign-arbitrary-data"
)

// Message type urls understood by the chain.
const (
	MsgTypeBankSend           = "/cosmos.bank.v1beta1.MsgSend"
	MsgTypeScriptExec         = "/dysonprotocol.script.v1.MsgExec"
	MsgTypeStorageSet         = "/dysonprotocol.storage.v1.MsgStorageSet"
	MsgTypeStorageDelete      = "/dysonprotocol.storage.v1.MsgStorageDelete"
	MsgTypeCrontaskCreate     = "/dysonprotocol.crontask.v1.MsgCreateTask"
	MsgTypeCrontaskDelete     = "/dysonprotocol.crontask.v1.MsgDeleteTask"
	MsgTypeNameCommit         = "/dysonprotocol.nameservice.v1.MsgCommit"
	MsgTypeNameReveal         = "/dysonprotocol.nameservice.v1.MsgReveal"
	MsgTypeNameSetDestination = "/dysonprotocol.nameservice.v1.MsgSetDestination"
	MsgTypeNameSetValuation   = "/dysonprotocol.nameservice.v1.MsgSetValuation"
	MsgTypeSignArbitraryData  = "/offchain.MsgSignArbitraryData"
)

// SupportedTxTypes returns every TxType with a typed constructor.
func SupportedTxTypes() []TxType {
	return []TxType{
		TxTypeBankSend,
		TxTypeScriptExec,
		TxTypeStorageSet,
		TxTypeStorageDelete,
		TxTypeCrontaskCreate,
		TxTypeCrontaskDelete,
		TxTypeNameCommit,
		TxTypeNameReveal,
		TxTypeNameSetDestination,
		TxTypeNameSetValuation,
	}
}
