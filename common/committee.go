package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
)

// ErrCommitteeWitnessFailed appears when the method must be called by the
// committee but was not.
const ErrCommitteeWitnessFailed = "committee witness check failed"

// CommitteeAddress returns multi address of the committee public keys.
func CommitteeAddress() interop.Hash160 {
	return Multiaddress(neo.GetCommittee(), true)
}

// CheckCommitteeWitness panics with ErrCommitteeWitnessFailed if the
// transaction is not signed by the committee.
func CheckCommitteeWitness() {
	checkWitnessWithPanic(CommitteeAddress(), ErrCommitteeWitnessFailed)
}

// Multiaddress returns default multi signature account address for N keys.
// If committee set to true, then it is `M = N/2+1` committee account.
func Multiaddress(n []interop.PublicKey, committee bool) interop.Hash160 {
	threshold := len(n)*2/3 + 1
	if committee {
		threshold = len(n)/2 + 1
	}

	keys := []interop.PublicKey{}
	for _, key := range n {
		keys = append(keys, key)
	}

	return contract.CreateMultisigAccount(threshold, keys)
}
