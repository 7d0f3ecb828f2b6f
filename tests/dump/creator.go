package dump

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// ErrExists is returned by Creator if the dump file is already there.
var ErrExists = errors.New("dump already exists")

// Creator collects contracts' states and storages in memory and writes them
// into '<dir>/<label>@<block>.json' on Flush. Only Provena contracts known to
// the contracts package can be added.
type Creator struct {
	dir string
	id  ID

	contracts []contractDump
}

// NewCreator returns Creator of the dump with the given ID in dir. Existing
// dumps are never overwritten.
func NewCreator(dir string, id ID) (*Creator, error) {
	_, err := os.Stat(id.path(dir))
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, id)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("check dump file: %w", err)
	}

	return &Creator{dir: dir, id: id}, nil
}

// AddContract adds the named contract state and returns StorageWriter for
// its storage items. Each contract can be added once.
func (x *Creator) AddContract(name string, st state.Contract) (*StorageWriter, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	for i := range x.contracts {
		if x.contracts[i].Name == name {
			return nil, fmt.Errorf("contract '%s' is already added", name)
		}
	}

	x.contracts = append(x.contracts, contractDump{Name: name, State: st})

	return &StorageWriter{c: x, i: len(x.contracts) - 1}, nil
}

// Flush writes collected contracts to the file system.
func (x *Creator) Flush() error {
	data, err := json.MarshalIndent(file{Contracts: x.contracts}, "", " ")
	if err != nil {
		return fmt.Errorf("encode dump to JSON: %w", err)
	}

	f, err := os.OpenFile(x.id.path(x.dir), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, x.id)
		}
		return fmt.Errorf("create dump file: %w", err)
	}

	_, err = f.Write(data)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return fmt.Errorf("write dump file: %w", err)
	}

	return nil
}

// StorageWriter adds storage items of one contract to the dump.
type StorageWriter struct {
	c *Creator
	i int
}

// Write adds the key-value pair to the contract storage. Both slices are
// copied, so callers can reuse them.
func (x *StorageWriter) Write(key, value []byte) error {
	if len(key) == 0 {
		return errors.New("empty storage key")
	}

	d := &x.c.contracts[x.i]
	d.Storage = append(d.Storage, item{Key: bytes.Clone(key), Value: bytes.Clone(value)})

	return nil
}
