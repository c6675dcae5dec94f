package cmd

import (
	"fmt"

	"github.com/marcus/billpay/internal/config"
	"github.com/marcus/billpay/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write project settings in .billpay/config.json",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		v, err := cfg.Get(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Fprintln(output.Stdout, v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting (an empty value clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()
		cfg, err := config.Load(dir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		if err := config.Save(dir, cfg); err != nil {
			output.Error("save config: %v", err)
			return err
		}
		output.Success("%s = %q", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(cfg)
		}
		for _, k := range config.Keys() {
			v, _ := cfg.Get(k)
			fmt.Fprintf(output.Stdout, "%-14s %s\n", k, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)

	configListCmd.Flags().Bool("json", false, "Machine-readable JSON")
}
