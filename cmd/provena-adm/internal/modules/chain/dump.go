package chain

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/olekukonko/tablewriter"
	"github.com/provena-labs/provena-contract/contracts"
	"github.com/provena-labs/provena-contract/tests/dump"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dumpContracts(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	label, _ := cmd.Flags().GetString(dumpLabelFlag)
	rootDir, _ := cmd.Flags().GetString(dumpDirFlag)

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		return fmt.Errorf("create root dir: %w", err)
	}

	c, err := getN3Client(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer c.Close()

	nLatestBlock, err := c.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	d, err := dump.NewCreator(rootDir, dump.ID{
		Label: label,
		Block: nLatestBlock,
	})
	if err != nil {
		return fmt.Errorf("init local dumper: %w", err)
	}

	for _, name := range contracts.Dirs() {
		cmd.Printf("Processing contract '%s'...\n", name)

		h, err := contractHash(v, name)
		if err != nil {
			return err
		}

		st, err := c.GetContractStateByHash(h)
		if err != nil {
			return fmt.Errorf("get state of the '%s' contract by hash '%s': %w", name, h.StringLE(), err)
		}

		s, err := d.AddContract(name, *st)
		if err != nil {
			return fmt.Errorf("add '%s' contract to the dump: %w", name, err)
		}

		err = iterateContractStorage(c, nLatestBlock, h, s.Write)
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", name, err)
		}
	}

	err = d.Flush()
	if err != nil {
		return fmt.Errorf("flush dump: %w", err)
	}

	cmd.Printf("Provena contracts are successfully dumped to '%s/'\n", rootDir)

	return nil
}

// iterateContractStorage iterates over all storage items of the Neo smart
// contract referenced by given address and passes them into f. Storage is
// read at the state of the block preceding the given one.
// iterateContractStorage breaks on any f's error and returns it.
func iterateContractStorage(c *rpcclient.Client, nLatestBlock uint32, contract util.Uint160, f func(key, value []byte) error) error {
	stateRoot, err := c.GetStateRootByHeight(nLatestBlock - 1)
	if err != nil {
		return fmt.Errorf("get state root at penult block #%d: %w", nLatestBlock-1, err)
	}

	var start []byte

	for {
		res, err := c.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the requested contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}

func listDumps(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString(dumpDirFlag)

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Label", "Block", "Contract", "Storage items"})
	out.SetAutoMergeCells(true)

	var n int
	err := dump.IterateDumps(dir, func(id dump.ID, r *dump.Reader) {
		n++
		for _, name := range r.ContractNames() {
			out.Append([]string{
				id.Label,
				strconv.FormatUint(uint64(id.Block), 10),
				name,
				strconv.Itoa(r.StorageSize(name)),
			})
		}
	})
	if err != nil {
		return fmt.Errorf("read dumps: %w", err)
	}

	if n == 0 {
		cmd.Printf("No dumps in '%s'\n", dir)
		return nil
	}

	out.Render()
	return nil
}
