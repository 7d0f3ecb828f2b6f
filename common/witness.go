package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

const (
	// ErrWitnessFailed appears when the method must be called
	// by a certain party but was not.
	ErrWitnessFailed = "witness check failed"
	// ErrInvalidAddress appears when an argument is not a valid script hash.
	ErrInvalidAddress = "invalid address"
)

// CheckWitness checks witness of the passed party.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(party interop.Hash160) {
	checkWitnessWithPanic(party, ErrWitnessFailed)
}

// CheckAddress panics with ErrInvalidAddress if h is not a 20-byte hash.
func CheckAddress(h interop.Hash160) {
	if len(h) != interop.Hash160Len {
		panic(ErrInvalidAddress)
	}
}

// CheckCaller panics with msg unless the method is invoked from the contract
// with the given hash.
func CheckCaller(expected interop.Hash160, msg string) {
	if !runtime.GetCallingScriptHash().Equals(expected) {
		panic(msg)
	}
}

func checkWitnessWithPanic(caller interop.Hash160, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
