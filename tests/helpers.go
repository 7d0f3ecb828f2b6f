package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/provena-labs/provena-contract/common"
)

// tests contract's 'version' method and checks that 'update' is available to
// the committee only.
func testVersionAndUpdate(t testing.TB, contract *neotest.ContractInvoker) {
	contract.Invoke(t, common.Version, "version")
	contract.WithSigners(contract.NewAccount(t)).InvokeFail(t, "only committee can update contract",
		"update", []byte{}, []byte{}, nil)
}
