package cmd

import (
	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
)

var stageCmd = &cobra.Command{
	Use:   "stage <project-dir> <dest-dir>",
	Short: "Stage a Julia project into a fresh directory for submission",
	Long: `Stage a Julia project into a fresh directory for submission.

Copies Project.toml, Manifest.toml, src/, and scripts/ from the project
directory into a new destination directory, so a submitted job runs against
a frozen copy of the source tree. The destination must not already exist.`,
	Example: `  arctools stage ~/MyProject /scratch/$USER/myproject-run1`,
	Args:    cobra.ExactArgs(2),
	RunE:    runStage,
}

func init() {
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	dest, err := utils.StageProject(args[0], args[1])
	if err != nil {
		return err
	}
	utils.PrintSuccess("Staged project at %s", utils.StylePath(dest))
	return nil
}
