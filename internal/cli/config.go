package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/empiricaly/create-empirica-app/internal/branding"
	"github.com/empiricaly/create-empirica-app/internal/config"
	scaffolderr "github.com/empiricaly/create-empirica-app/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write settings stored at ~/` + branding.HomeDir() + `/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		key, value := args[0], args[1]
		if err := checkConfigKey(key); err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if err := checkConfigKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

func checkConfigKey(key string) error {
	if _, ok := config.Defaults[key]; ok {
		return nil
	}
	keys := make([]string, 0, len(config.Defaults))
	for k := range config.Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	err := scaffolderr.New(scaffolderr.EUsage, fmt.Sprintf("unknown config key %q", key))
	return scaffolderr.WithHints(err, "Known keys: "+strings.Join(keys, ", "))
}
