package config

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/provena-labs/provena-contract/contracts"
	"github.com/provena-labs/provena-contract/contracts/dispute/disputeconst"
	"github.com/provena-labs/provena-contract/contracts/score/scoreconst"
	"github.com/spf13/cobra"
)

// PathFlag is a name of the flag with config file path.
const PathFlag = "config"

var (
	// RootCmd is a root command of config section.
	RootCmd = &cobra.Command{
		Use:   "config",
		Short: "Section for provena-adm config related commands",
		// config file may be missing yet
		PersistentPreRun: func(*cobra.Command, []string) {},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize basic provena-adm configuration file",
		Example: `provena-adm config init
provena-adm config init --config config.yml`,
		RunE: initConfig,
	}
)

func init() {
	RootCmd.AddCommand(initCmd)
}

type configTemplate struct {
	Endpoint     string
	Wallet       string
	ContractsDir string
	Contracts    []string
	Smoothing    int
	DecayRate    int
	RestoreRate  int
	Reward       int
	Deposit      int
	VotingPeriod int
	TokenSupply  int
	RewardPool   int
}

const configTxtTemplate = `rpc-endpoint: {{ .Endpoint}}
wallet: {{ .Wallet}}
# if wallet-password is omitted, then provena-adm will require manual password input
wallet-password: ""
contracts-dir: {{ .ContractsDir}}
# addresses of the deployed contracts, printed by 'provena-adm deploy';
# recorded contracts are updated in place by the next deploy
contracts:{{ range .Contracts}}
  {{.}}: ""{{end}}
policy:
  smoothing: {{ .Smoothing}}
  decay_rate: {{ .DecayRate}}
  restore_rate: {{ .RestoreRate}}
  reward: {{ .Reward}}
  deposit: {{ .Deposit}}
  voting_period: {{ .VotingPeriod}}
  token_supply: {{ .TokenSupply}}
  reward_pool: {{ .RewardPool}}
`

func initConfig(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString(PathFlag)
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	pathDir := path.Dir(configPath)
	err = os.MkdirAll(pathDir, 0700)
	if err != nil {
		return fmt.Errorf("create dir %s: %w", pathDir, err)
	}

	configText, err := generateConfigExample(pathDir)
	if err != nil {
		return err
	}

	err = os.WriteFile(configPath, []byte(configText), 0600)
	if err != nil {
		return fmt.Errorf("writing to %s: %w", configPath, err)
	}

	cmd.Printf("Initial config file saved to %s\n", configPath)

	return nil
}

// DefaultPath returns path of the config file used when no path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir path: %w", err)
	}

	return path.Join(home, ".provena", "adm", "config.yml"), nil
}

// generateConfigExample builds .yml representation of the config file. The
// template keeps records in a stable order and allows comments.
func generateConfigExample(appDir string) (string, error) {
	tmpl := configTemplate{
		Endpoint:     "http://localhost:30333",
		Contracts:    contracts.Dirs(),
		Smoothing:    scoreconst.DefaultSmoothing,
		DecayRate:    scoreconst.DefaultDecayRate,
		RestoreRate:  scoreconst.DefaultRestoreRate,
		Reward:       scoreconst.RewardAmount,
		Deposit:      disputeconst.DefaultDeposit,
		VotingPeriod: disputeconst.DefaultVotingPeriod,
		TokenSupply:  1_000_000_0000_0000, // 1M tokens
		RewardPool:   100_000_0000_0000,   // 100k tokens
	}

	appDir, err := filepath.Abs(appDir)
	if err != nil {
		return "", fmt.Errorf("making absolute path for %s: %w", appDir, err)
	}
	tmpl.Wallet = path.Join(appDir, "wallet.json")
	tmpl.ContractsDir = path.Join(appDir, "contracts")

	t, err := template.New("config.yml").Parse(configTxtTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing config template: %w", err)
	}

	buf := bytes.NewBuffer(nil)

	err = t.Execute(buf, tmpl)
	if err != nil {
		return "", fmt.Errorf("generating config from template: %w", err)
	}

	return buf.String(), nil
}
