package cmd

import (
	"fmt"

	"github.com/jondeuce/arctools/internal/config"
	"github.com/jondeuce/arctools/internal/scheduler"
	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Display scheduler submission information",
	Long: `Display information about the detected PBS submission command.

Shows the qsub binary path, version, and availability status.`,
	Example: `  arctools scheduler           # Show submitter information`,
	Run:     runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) {
	var sub *scheduler.Submitter
	var err error
	if config.Global.QsubBin != "" {
		sub, err = scheduler.NewSubmitterWithBinary(config.Global.QsubBin)
	} else {
		sub, err = scheduler.NewSubmitter()
	}

	if err != nil {
		utils.PrintMessage("Scheduler Status: %s", utils.StyleError("Not Found"))
		utils.PrintMessage("")
		utils.PrintMessage("No qsub binary detected on this system.")
		return
	}

	info := sub.Info()

	// Structured output, no [ARC] prefix
	fmt.Println("Submitter Information:")
	fmt.Printf("  Binary:    %s\n", utils.StylePath(info.Binary))
	if info.Version != "" {
		fmt.Printf("  Version:   %s\n", utils.StyleNumber(info.Version))
	}

	if info.InJob {
		fmt.Printf("  Status:    %s (inside job)\n", utils.StyleError("Unavailable"))
		fmt.Println()
		fmt.Println("You are currently inside a PBS job (detected via environment).")
		fmt.Println("Job submission is disabled to prevent nested submissions.")
	} else if info.Available {
		fmt.Printf("  Status:    %s\n", utils.StyleSuccess("Available"))
	} else {
		fmt.Printf("  Status:    %s\n", utils.StyleError("Unavailable"))
	}
}
