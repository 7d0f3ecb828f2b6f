package dump

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/provena-labs/provena-contract/contracts"
)

// ID identifies a dump: the network it was taken from and the height.
type ID struct {
	// Network label, e.g. testnet.
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

const (
	idSep     = "@"
	extension = ".json"
)

// String returns ID in '<label>@<block>' form. It's also the dump file name
// without extension.
func (x ID) String() string {
	return x.Label + idSep + strconv.FormatUint(uint64(x.Block), 10)
}

// parseFileName decodes ID from the dump file name.
func parseFileName(name string) (ID, error) {
	var id ID

	base, ok := strings.CutSuffix(name, extension)
	if !ok {
		return id, fmt.Errorf("missing %s extension", extension)
	}

	i := strings.LastIndex(base, idSep)
	if i <= 0 {
		return id, fmt.Errorf("expected <label>%s<block>", idSep)
	}

	n, err := strconv.ParseUint(base[i+1:], 10, 32)
	if err != nil {
		return id, fmt.Errorf("block number: %w", err)
	}

	id.Label = base[:i]
	id.Block = uint32(n)
	return id, nil
}

func (x ID) path(dir string) string {
	return filepath.Join(dir, x.String()+extension)
}

// file is the JSON layout of the dump.
type file struct {
	Contracts []contractDump `json:"contracts"`
}

type contractDump struct {
	// Name is the contract directory name, see contracts.Dirs.
	Name    string         `json:"name"`
	State   state.Contract `json:"state"`
	Storage []item         `json:"storage"`
}

// item is a storage item, JSON encodes both as base64.
type item struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

func checkName(name string) error {
	if !slices.Contains(contracts.Dirs(), name) {
		return fmt.Errorf("unknown contract '%s'", name)
	}
	return nil
}
