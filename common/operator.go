package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SaveOperators stores script hashes of the contracts allowed to act on
// behalf of any party. Operators are taken from args starting at index from.
func SaveOperators(ctx storage.Context, prefix byte, args []any, from int) {
	for i := from; i < len(args); i++ {
		h := args[i].(interop.Hash160)
		CheckAddress(h)
		storage.Put(ctx, AddressKey(prefix, h), true)
	}
}

// IsOperatorCall checks whether the method is invoked by one of the
// operators stored by SaveOperators.
func IsOperatorCall(ctx storage.Context, prefix byte) bool {
	return storage.Get(ctx, AddressKey(prefix, runtime.GetCallingScriptHash())) != nil
}

// CheckWitnessOrOperator panics with ErrWitnessFailed unless the party has
// witnessed the transaction or the method is invoked by an operator.
func CheckWitnessOrOperator(ctx storage.Context, prefix byte, party interop.Hash160) {
	if !runtime.CheckWitness(party) && !IsOperatorCall(ctx, prefix) {
		panic(ErrWitnessFailed)
	}
}
