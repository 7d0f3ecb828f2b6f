package contracts

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func validFS(tb testing.TB) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, dir := range Dirs() {
		_, bNEF := anyValidNEF(tb)
		_, jManifest := anyValidManifest(tb, "Provena "+dir)

		fsys[dir+"/"+nefName] = &fstest.MapFile{Data: bNEF}
		fsys[dir+"/"+manifestName] = &fstest.MapFile{Data: jManifest}
	}
	return fsys
}

func TestRead(t *testing.T) {
	set, err := Read(validFS(t))
	require.NoError(t, err)

	require.Equal(t, "Provena registry", set.Registry.Manifest.Name)
	require.Equal(t, "Provena product", set.Product.Manifest.Name)
	require.Equal(t, "Provena token", set.Token.Manifest.Name)
	require.Equal(t, "Provena score", set.Score.Manifest.Name)
	require.Equal(t, "Provena handoff", set.Handoff.Manifest.Name)
	require.Equal(t, "Provena dispute", set.Dispute.Manifest.Name)
}

func TestReadMissingFiles(t *testing.T) {
	fsys := validFS(t)

	// Missing NEF
	delete(fsys, ScoreDir+"/"+nefName)
	_, err := Read(fsys)
	require.ErrorContains(t, err, ScoreDir)

	// Missing manifest.
	fsys = validFS(t)
	delete(fsys, DisputeDir+"/"+manifestName)
	_, err = Read(fsys)
	require.ErrorContains(t, err, DisputeDir)

	_, err = ReadDir(t.TempDir())
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		fsys         = validFS(t)
		nefPath      = HandoffDir + "/" + nefName
		manifestPath = HandoffDir + "/" + manifestName
		validNEF     = fsys[nefPath].Data
	)

	fsys[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}

	_, err := Read(fsys)
	require.ErrorIs(t, err, errInvalidNEF)

	fsys[nefPath] = &fstest.MapFile{Data: validNEF}
	fsys[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = Read(fsys)
	require.ErrorIs(t, err, errInvalidManifest)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
