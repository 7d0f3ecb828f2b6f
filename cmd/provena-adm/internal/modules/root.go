package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/provena-labs/provena-contract/cmd/provena-adm/internal/modules/chain"
	"github.com/provena-labs/provena-contract/cmd/provena-adm/internal/modules/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PROVENA_ADM"

var rootCmd = &cobra.Command{
	Use:   "provena-adm",
	Short: "Provena administrative tool",
	Long: `Provena administrative tool deploys and updates Provena contracts,
dumps their state for migration tests and reads stakeholder scores, handoffs
and disputes from the chain.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

func init() {
	cobra.EnableCommandSorting = false

	// config keys use underscores, so both spellings are accepted in flags
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringP(config.PathFlag, "c", "", "Path to the config file (default is $HOME/.provena/adm/config.yml)")
	rootCmd.PersistentFlags().BoolP(chain.VerboseFlag, "v", false, "Verbose output")
	_ = viper.BindPFlag(chain.VerboseFlag, rootCmd.PersistentFlags().Lookup(chain.VerboseFlag))

	rootCmd.AddCommand(config.RootCmd)
	for _, cmd := range chain.Commands() {
		rootCmd.AddCommand(cmd)
	}
}

// Execute runs the command selected by process arguments.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPath, err := cmd.Flags().GetString(config.PathFlag)
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(configPath); err != nil {
			// config is optional, flags and environment are enough
			return nil
		}
	}

	viper.SetConfigType("yml")
	viper.SetConfigFile(filepath.Clean(configPath))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", configPath, err)
	}

	return nil
}
