package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/provena-labs/provena-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol
	Symbol string
	// Amount of decimals
	Decimals int
	// Storage key for circulation value
	CirculationKey string
}

const (
	symbol      = "PRV"
	decimals    = 8
	circulation = "supply"
	accPrefix   = 'a'
	opPrefix    = 'o'
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

// _deploy mints initial supply to the owner. Deploy data is [owner, supply,
// operators...]; operators are contracts which may transfer tokens of any
// account that has authorized their call.
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	args := data.([]any)
	if isUpdate {
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	ctx := storage.GetContext()

	owner := args[0].(interop.Hash160)
	common.CheckAddress(owner)

	supply := 0
	if len(args) >= 2 {
		supply = args[1].(int)
	}
	if supply < 0 {
		panic("negative supply")
	}

	if supply > 0 {
		var mint interop.Hash160

		storage.Put(ctx, token.CirculationKey, supply)
		storage.Put(ctx, accountKey(owner), supply)
		runtime.Notify("Transfer", mint, owner, supply)
	}

	common.SaveOperators(ctx, opPrefix, args, 2)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	common.UpdateContract(script, manifest, data)
	runtime.Log("token contract updated")
}

// Symbol is a NEP-17 standard method that returns token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns token precision.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns total amount of
// tokens in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns balance of the specified
// account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers tokens from one
// account to another. It returns false if the sender can not spend the
// amount.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	if !token.transfer(ctx, from, to, amount) {
		return false
	}

	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}

	return true
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	v := storage.Get(ctx, accountKey(holder))
	if v != nil {
		return v.(int)
	}

	return 0
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	if amount < 0 {
		panic("negative amount")
	}

	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic(common.ErrInvalidAddress)
	}

	if !isUsableAddress(ctx, from) {
		runtime.Log("bad script hashes")
		return false
	}

	amountFrom := t.balanceOf(ctx, from)
	if amountFrom < amount {
		runtime.Log("not enough assets")
		return false
	}

	if amount > 0 && !from.Equals(to) {
		if amountFrom == amount {
			storage.Delete(ctx, accountKey(from))
		} else {
			storage.Put(ctx, accountKey(from), amountFrom-amount)
		}

		storage.Put(ctx, accountKey(to), t.balanceOf(ctx, to)+amount)
	}

	runtime.Notify("Transfer", from, to, amount)

	return true
}

// isUsableAddress checks if the sender is either a correct NEO address or SC
// address, or the transfer is made by an operator.
func isUsableAddress(ctx storage.Context, addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}

	// Check if a smart contract is calling script hash
	callingScriptHash := runtime.GetCallingScriptHash()
	if callingScriptHash.Equals(addr) {
		return true
	}

	return common.IsOperatorCall(ctx, opPrefix)
}

func accountKey(holder interop.Hash160) []byte {
	return common.AddressKey(accPrefix, holder)
}
