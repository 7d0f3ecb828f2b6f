/*
Package contracts reads compiled Provena contracts.

Every contract is expected in its own directory named after it, holding
contract.nef and manifest.json produced by the neo-go compiler.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

// Names of contract directories.
const (
	RegistryDir = "registry"
	ProductDir  = "product"
	TokenDir    = "token"
	ScoreDir    = "score"
	HandoffDir  = "handoff"
	DisputeDir  = "dispute"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about Neo contract stored in the current package.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Set is a complete set of Provena contracts.
type Set struct {
	Registry Contract
	Product  Contract
	Token    Contract
	Score    Contract
	Handoff  Contract
	Dispute  Contract
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// Dirs returns contract directory names in the order contracts are supposed
// to be deployed.
func Dirs() []string {
	return []string{RegistryDir, ProductDir, TokenDir, ScoreDir, HandoffDir, DisputeDir}
}

// ReadDir reads the set of contracts compiled into the given directory.
func ReadDir(dir string) (Set, error) {
	return Read(os.DirFS(dir))
}

// Read reads the set of contracts from fsys.
func Read(fsys fs.FS) (Set, error) {
	var (
		res  Set
		dsts = []*Contract{&res.Registry, &res.Product, &res.Token, &res.Score, &res.Handoff, &res.Dispute}
	)

	for i, dir := range Dirs() {
		c, err := readContractFromDir(fsys, dir)
		if err != nil {
			return res, fmt.Errorf("read contract %s: %w", dir, err)
		}

		*dsts[i] = c
	}

	return res, nil
}

func readContractFromDir(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS paths always use "/", so filepath.Join() is not applicable.
	fNEF, err := fsys.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
