package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// IterateDumps reads every dump file in dir in lexicographic order and
// passes it into f. Other files are skipped, missing dir means no dumps.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read dump dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}

		id, err := parseFileName(e.Name())
		if err != nil {
			return fmt.Errorf("dump file '%s': %w", e.Name(), err)
		}

		r, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}

		f(id, r)
	}

	return nil
}

// Reader provides contracts of one dump.
type Reader struct {
	contracts []contractDump
}

// ReadFile reads the dump from the file. Contracts unknown to the contracts
// package are rejected.
func ReadFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump file: %w", err)
	}

	var res file
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode dump '%s': %w", path, err)
	}

	for i := range res.Contracts {
		if err = checkName(res.Contracts[i].Name); err != nil {
			return nil, fmt.Errorf("dump '%s': %w", path, err)
		}
	}

	return &Reader{contracts: res.Contracts}, nil
}

// IterateContractStates passes every dumped contract state into f in the
// order contracts were added.
func (x *Reader) IterateContractStates(f func(name string, _state state.Contract)) error {
	for i := range x.contracts {
		f(x.contracts[i].Name, x.contracts[i].State)
	}
	return nil
}

// IterateContractStorages passes every dumped storage item into f.
func (x *Reader) IterateContractStorages(f func(name string, key, value []byte)) error {
	for i := range x.contracts {
		for _, it := range x.contracts[i].Storage {
			f(x.contracts[i].Name, it.Key, it.Value)
		}
	}
	return nil
}

// ContractNames returns names of dumped contracts in the order they were
// added.
func (x *Reader) ContractNames() []string {
	res := make([]string, len(x.contracts))
	for i := range x.contracts {
		res[i] = x.contracts[i].Name
	}
	return res
}

// StorageSize returns number of storage items of the named contract.
func (x *Reader) StorageSize(name string) int {
	for i := range x.contracts {
		if x.contracts[i].Name == name {
			return len(x.contracts[i].Storage)
		}
	}
	return 0
}
