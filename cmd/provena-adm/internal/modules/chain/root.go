package chain

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// VerboseFlag enables debug logging.
	VerboseFlag = "verbose"

	endpointFlag       = "rpc-endpoint"
	walletFlag         = "wallet"
	walletPasswordFlag = "wallet-password"
	contractsDirFlag   = "contracts-dir"
	dumpLabelFlag      = "label"
	dumpDirFlag        = "dir"

	smoothingInitFlag    = "policy.smoothing"
	smoothingCLIFlag     = "smoothing"
	decayRateInitFlag    = "policy.decay_rate"
	decayRateCLIFlag     = "decay-rate"
	restoreRateInitFlag  = "policy.restore_rate"
	restoreRateCLIFlag   = "restore-rate"
	rewardInitFlag       = "policy.reward"
	rewardCLIFlag        = "reward"
	depositInitFlag      = "policy.deposit"
	depositCLIFlag       = "deposit"
	votingPeriodInitFlag = "policy.voting_period"
	votingPeriodCLIFlag  = "voting-period"
	tokenSupplyInitFlag  = "policy.token_supply"
	tokenSupplyCLIFlag   = "token-supply"
	rewardPoolInitFlag   = "policy.reward_pool"
	rewardPoolCLIFlag    = "reward-pool"
)

var (
	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Provena contracts or update them to the local version",
		Long: `Deploy Provena contracts compiled into the contracts directory. Contracts with
addresses recorded in the config (contracts.<name>) are updated in place if
their code differs, the update requires the account to be a committee one.
Other contracts are deployed at the addresses predicted for the wallet account
unless they are already there. Record printed addresses in the config to
update the contracts later.`,
		PreRun: func(cmd *cobra.Command, _ []string) {
			// PreRun fixes https://github.com/spf13/viper/issues/233
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
			_ = viper.BindPFlag(walletFlag, cmd.Flags().Lookup(walletFlag))
			_ = viper.BindPFlag(contractsDirFlag, cmd.Flags().Lookup(contractsDirFlag))
			_ = viper.BindPFlag(smoothingInitFlag, cmd.Flags().Lookup(smoothingCLIFlag))
			_ = viper.BindPFlag(decayRateInitFlag, cmd.Flags().Lookup(decayRateCLIFlag))
			_ = viper.BindPFlag(restoreRateInitFlag, cmd.Flags().Lookup(restoreRateCLIFlag))
			_ = viper.BindPFlag(rewardInitFlag, cmd.Flags().Lookup(rewardCLIFlag))
			_ = viper.BindPFlag(depositInitFlag, cmd.Flags().Lookup(depositCLIFlag))
			_ = viper.BindPFlag(votingPeriodInitFlag, cmd.Flags().Lookup(votingPeriodCLIFlag))
			_ = viper.BindPFlag(tokenSupplyInitFlag, cmd.Flags().Lookup(tokenSupplyCLIFlag))
			_ = viper.BindPFlag(rewardPoolInitFlag, cmd.Flags().Lookup(rewardPoolCLIFlag))
		},
		RunE: deployContracts,
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump states and storages of the deployed Provena contracts",
		Long: `Dump states and storages of the deployed Provena contracts into
'<dir>/<label>@<block>.json'. Dumps are used by migration tests of the contracts.`,
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: dumpContracts,
	}

	dumpListCmd = &cobra.Command{
		Use:   "dump-list",
		Short: "List contract dumps stored in the directory",
		RunE:  listDumps,
	}

	contractsCmd = &cobra.Command{
		Use:   "contracts",
		Short: "Print addresses and versions of the configured contracts",
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: listContracts,
	}

	policyCmd = &cobra.Command{
		Use:   "policy",
		Short: "Print current score and dispute policy",
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: printPolicy,
	}

	scoreCmd = &cobra.Command{
		Use:   "score",
		Short: "Section for stakeholder scores",
	}

	scoreGetCmd = &cobra.Command{
		Use:   "get <score-id>",
		Short: "Print single score record",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: printScore,
	}

	scoreListCmd = &cobra.Command{
		Use:   "list <party>",
		Short: "Print global scores, confidence and all score records of the party",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: printPartyScores,
	}

	handoffCmd = &cobra.Command{
		Use:   "handoff <handoff-id>",
		Short: "Print handoff and its provenance chain",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: printHandoff,
	}

	disputeCmd = &cobra.Command{
		Use:   "dispute <dispute-id>",
		Short: "Print dispute and its ballots",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			_ = viper.BindPFlag(endpointFlag, cmd.Flags().Lookup(endpointFlag))
		},
		RunE: printDispute,
	}
)

// Commands returns all chain related commands.
func Commands() []*cobra.Command {
	return []*cobra.Command{deployCmd, dumpCmd, dumpListCmd, contractsCmd, policyCmd, scoreCmd, handoffCmd, disputeCmd}
}

func init() {
	for _, cmd := range []*cobra.Command{deployCmd, dumpCmd, contractsCmd, policyCmd,
		scoreGetCmd, scoreListCmd, handoffCmd, disputeCmd} {
		cmd.Flags().StringP(endpointFlag, "r", "", "N3 RPC node endpoint")
	}
	scoreCmd.AddCommand(scoreGetCmd, scoreListCmd)

	ff := deployCmd.Flags()
	ff.StringP(walletFlag, "w", "", "Path to the wallet with deployer account")
	ff.String(contractsDirFlag, "", "Path to the directory with compiled contracts")
	ff.Int64(smoothingCLIFlag, 0, "Weight of the new rating in running score (10^-8 units)")
	ff.Int64(decayRateCLIFlag, 0, "Confidence lost per vote of margin")
	ff.Int64(restoreRateCLIFlag, 0, "Confidence restored per vote of margin")
	ff.Int64(rewardCLIFlag, 0, "Reward paid for each rating")
	ff.Int64(depositCLIFlag, 0, "Dispute deposit")
	ff.Int64(votingPeriodCLIFlag, 0, "Dispute voting period in milliseconds")
	ff.Int64(tokenSupplyCLIFlag, 0, "Initial supply of the reward token")
	ff.Int64(rewardPoolCLIFlag, 0, "Amount transferred to the reward pool after token deployment")

	dumpCmd.Flags().String(dumpLabelFlag, "", "Label of the blockchain environment (e.g. 'testnet')")
	dumpCmd.Flags().String(dumpDirFlag, "testdata", "Directory to save dump to")
	_ = dumpCmd.MarkFlagRequired(dumpLabelFlag)

	dumpListCmd.Flags().String(dumpDirFlag, "testdata", "Directory with dumps")
}
