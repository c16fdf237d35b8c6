package cmd

import (
	"fmt"
	"os"

	"github.com/jondeuce/arctools/internal/config"
	"github.com/jondeuce/arctools/internal/scheduler"
	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
)

var (
	debugMode bool
	localMode bool
)

var rootCmd = &cobra.Command{
	Use:           "arctools",
	Short:         "ARCTools: Generate and submit PBS job scripts for Julia programs on HPC clusters.",
	Version:       config.VERSION,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load built-in defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Auto-detect binaries if needed and save to config
		updated, err := config.AutoDetectAndSave()
		if err != nil {
			utils.PrintDebug("Failed to save config: %v", err)
		} else if updated {
			if configPath, err := config.GetUserConfigPath(); err == nil {
				utils.PrintDebug("Auto-detected binaries saved to: %s", configPath)
			}
		}

		// Step 4: Load detected values from Viper into Global config
		config.LoadFromViper()

		// Step 5: Apply command-line flags (highest priority)
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("ARCTools Version: %s", utils.StyleInfo(config.VERSION))
			utils.PrintDebug("Qsub Binary: %s", config.Global.QsubBin)
			utils.PrintDebug("Julia Binary: %s", config.Global.JuliaBin)
		}

		if localMode {
			config.Global.SubmitJob = false
			utils.PrintDebug("Local mode enabled (job submission disabled)")
		}

		// Step 6: Initialize the submitter if job submission is enabled
		if config.Global.SubmitJob {
			var sub *scheduler.Submitter
			var err error
			if config.Global.QsubBin != "" {
				sub, err = scheduler.NewSubmitterWithBinary(config.Global.QsubBin)
			} else {
				sub, err = scheduler.NewSubmitter()
			}
			if err == nil && sub.IsAvailable() {
				scheduler.SetActiveSubmitter(sub)
				utils.PrintDebug("Submitter initialized and available")
			} else if err != nil {
				utils.PrintDebug("Submitter not available: %v", err)
			} else {
				utils.PrintDebug("Submitter not available (already in a job)")
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVar(&localMode, "local", false, "Disable job submission (generate scripts only)")
}
