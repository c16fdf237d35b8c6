package cmd

import (
	"fmt"
	"os"

	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
)

var scriptShowContents bool

var scriptCmd = &cobra.Command{
	Use:   "script <script.jl> [-- <args>...]",
	Short: "Generate a PBS job script without submitting it",
	Long: `Generate a PBS job script without submitting it.

Takes the same flags as submit and writes the same <project>/pbs/<name>_job.pbs
file, but never invokes qsub. Useful for inspecting the generated directives
before committing cluster time.`,
	Example: `  arctools script --walltime 00:05:00 --select 2 --ncpus 3 run.jl -- Alice Bob
  arctools script --show run.jl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	addSpecFlags(scriptCmd)
	scriptCmd.Flags().BoolVar(&scriptShowContents, "show", false, "Print the generated script to stdout")
}

func runScript(cmd *cobra.Command, args []string) error {
	scriptPath, err := generateFromFlags(cmd, args)
	if err != nil {
		return err
	}

	utils.PrintMessage("Job script written to %s", utils.StylePath(scriptPath))

	if scriptShowContents {
		contents, err := os.ReadFile(scriptPath)
		if err != nil {
			return err
		}
		fmt.Print(string(contents))
	}
	return nil
}
