package chain

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/olekukonko/tablewriter"
	"github.com/provena-labs/provena-contract/contracts"
	"github.com/provena-labs/provena-contract/deploy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func deployContracts(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	dir := v.GetString(contractsDirFlag)
	if dir == "" {
		return fmt.Errorf("missing contracts directory")
	}

	set, err := contracts.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read contracts: %w", err)
	}

	acc, err := getAccount(v)
	if err != nil {
		return err
	}

	c, err := getN3Client(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer c.Close()

	l, err := newLogger(v)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	deployed, err := readDeployed(v)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	res, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       l,
		Blockchain:   c,
		LocalAccount: acc,
		Contracts:    set,
		Deployed:     deployed,
		Policy:       readPolicy(v),
	})
	if err != nil {
		return err
	}

	l.Info("Provena contracts are in sync", zap.String("deployer", acc.Address))

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Contract", "Script hash", "Address"})
	for _, row := range []struct {
		name string
		h    util.Uint160
	}{
		{contracts.RegistryDir, res.Registry},
		{contracts.ProductDir, res.Product},
		{contracts.TokenDir, res.Token},
		{contracts.ScoreDir, res.Score},
		{contracts.HandoffDir, res.Handoff},
		{contracts.DisputeDir, res.Dispute},
	} {
		out.Append([]string{row.name, row.h.StringLE(), address.Uint160ToString(row.h)})
	}
	out.Render()

	return nil
}

// readDeployed reads addresses of already deployed contracts, contracts
// missing in the config are left zero.
func readDeployed(v *viper.Viper) (deploy.Result, error) {
	var res deploy.Result

	for _, c := range []struct {
		name string
		h    *util.Uint160
	}{
		{contracts.RegistryDir, &res.Registry},
		{contracts.ProductDir, &res.Product},
		{contracts.TokenDir, &res.Token},
		{contracts.ScoreDir, &res.Score},
		{contracts.HandoffDir, &res.Handoff},
		{contracts.DisputeDir, &res.Dispute},
	} {
		if v.GetString("contracts."+c.name) == "" {
			continue
		}

		h, err := contractHash(v, c.name)
		if err != nil {
			return deploy.Result{}, err
		}
		*c.h = h
	}

	return res, nil
}

func readPolicy(v *viper.Viper) deploy.PolicyPrm {
	return deploy.PolicyPrm{
		Smoothing:    v.GetInt64(smoothingInitFlag),
		DecayRate:    v.GetInt64(decayRateInitFlag),
		RestoreRate:  v.GetInt64(restoreRateInitFlag),
		Reward:       v.GetInt64(rewardInitFlag),
		Deposit:      v.GetInt64(depositInitFlag),
		VotingPeriod: v.GetInt64(votingPeriodInitFlag),
		TokenSupply:  v.GetInt64(tokenSupplyInitFlag),
		RewardPool:   v.GetInt64(rewardPoolInitFlag),
	}
}
