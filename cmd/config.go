package cmd

import (
	"fmt"
	"strings"

	"github.com/jondeuce/arctools/internal/config"
	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Run:   runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Detect binaries and write the user config file",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	fmt.Println("Configuration:")
	fmt.Printf("  Qsub Binary:   %s\n", utils.StylePath(config.Global.QsubBin))
	fmt.Printf("  Julia Binary:  %s\n", utils.StylePath(config.Global.JuliaBin))
	fmt.Printf("  Submit Jobs:   %v\n", config.Global.SubmitJob)
	fmt.Printf("  Account:       %s\n", utils.StyleName(config.Global.Account))
	fmt.Printf("  Modules:       %s\n", strings.Join(config.Global.Modules, ", "))
	fmt.Printf("  Walltime:      %s\n", config.Global.Walltime)

	if configPath, err := config.GetUserConfigPath(); err == nil {
		fmt.Printf("  Config File:   %s\n", utils.StylePath(configPath))
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	updated, err := config.ForceDetectAndSave()
	if err != nil {
		return err
	}

	configPath, pathErr := config.GetUserConfigPath()
	if pathErr == nil {
		utils.PrintSuccess("Config written to %s", utils.StylePath(configPath))
	}
	if updated {
		utils.PrintMessage("Detected binaries were updated from the current environment.")
	}
	return nil
}
