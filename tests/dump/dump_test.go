package dump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	id := ID{Label: "testnet", Block: 42}
	require.Equal(t, "testnet@42", id.String())

	res, err := parseFileName("testnet@42.json")
	require.NoError(t, err)
	require.Equal(t, id, res)

	res, err = parseFileName("test@net@7.json")
	require.NoError(t, err)
	require.Equal(t, ID{Label: "test@net", Block: 7}, res)

	for _, name := range []string{"testnet@42", "testnet.json", "@42.json", "testnet@block.json"} {
		_, err = parseFileName(name)
		require.Error(t, err, name)
	}
}

func contractState(id int32, name string) state.Contract {
	return state.Contract{ContractBase: state.ContractBase{
		ID:       id,
		Hash:     util.Uint160{byte(id)},
		Manifest: *manifest.NewManifest(name),
	}}
}

func TestCreatorReader(t *testing.T) {
	var (
		dir = t.TempDir()
		id  = ID{Label: "devnet", Block: 100}
	)

	c, err := NewCreator(dir, id)
	require.NoError(t, err)

	w, err := c.AddContract("registry", contractState(1, "Provena Registry"))
	require.NoError(t, err)

	key := []byte{'s', 1}
	require.NoError(t, w.Write([]byte{'n'}, []byte{1}))
	require.NoError(t, w.Write(key, []byte("stakeholder")))
	key[1] = 2 // written items are not affected
	require.Error(t, w.Write(nil, []byte{1}))

	_, err = c.AddContract("score", contractState(2, "Provena Score"))
	require.NoError(t, err)

	_, err = c.AddContract("score", contractState(2, "Provena Score"))
	require.Error(t, err)
	_, err = c.AddContract("nns", contractState(3, "NameService"))
	require.Error(t, err)

	require.NoError(t, c.Flush())
	require.ErrorIs(t, c.Flush(), ErrExists)

	_, err = NewCreator(dir, id)
	require.ErrorIs(t, err, ErrExists)

	// foreign files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("dumps"), 0600))

	var calls int
	err = IterateDumps(dir, func(dumpID ID, r *Reader) {
		calls++
		require.Equal(t, id, dumpID)
		require.Equal(t, []string{"registry", "score"}, r.ContractNames())
		require.Equal(t, 2, r.StorageSize("registry"))
		require.Zero(t, r.StorageSize("score"))
		require.Zero(t, r.StorageSize("token"))

		states := make(map[string]int32)
		require.NoError(t, r.IterateContractStates(func(name string, st state.Contract) {
			states[name] = st.ID
		}))
		require.Equal(t, map[string]int32{"registry": 1, "score": 2}, states)

		var items [][2]string
		require.NoError(t, r.IterateContractStorages(func(name string, key, value []byte) {
			require.Equal(t, "registry", name)
			items = append(items, [2]string{string(key), string(value)})
		}))
		require.Equal(t, [][2]string{{"n", "\x01"}, {"s\x01", "stakeholder"}}, items)
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestReadFileUnknownContract(t *testing.T) {
	p := filepath.Join(t.TempDir(), "devnet@1.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"contracts":[{"name":"nns","storage":[]}]}`), 0600))

	_, err := ReadFile(p)
	require.ErrorContains(t, err, "unknown contract 'nns'")
}

func TestIterateDumpsMissingDir(t *testing.T) {
	err := IterateDumps(filepath.Join(t.TempDir(), "missing"), func(ID, *Reader) {
		t.Fatal("no dumps expected")
	})
	require.NoError(t, err)
}
