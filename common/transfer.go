package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// TransferTokens moves amount of NEP-17 token from one account to another and
// panics with msg if the token contract refuses the transfer. Zero amount is
// a no-op.
func TransferTokens(token, from, to interop.Hash160, amount int, msg string) {
	if amount == 0 {
		return
	}

	ok := contract.Call(token, "transfer", contract.All, from, to, amount, nil).(bool)
	if !ok {
		panic(msg)
	}
}

// PayFromSelf transfers amount of token from the executing contract balance.
func PayFromSelf(token, to interop.Hash160, amount int, msg string) {
	TransferTokens(token, runtime.GetExecutingScriptHash(), to, amount, msg)
}

// AbortWithMessage calls `runtime.Log` with passed message
// and panics.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	panic(msg)
}
