package cmd

import (
	"fmt"

	"github.com/jondeuce/arctools/internal/nodes"
	"github.com/spf13/cobra"
)

var (
	nodesFile   string
	nodesUnique bool
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print the allocated node list of the current job",
	Long: `Print the allocated node list of the current job, one hostname per line.

Reads PBS_NODEFILE by default; intended for distributed-worker bootstrap
scripts that need the host list in allocation order.`,
	Example: `  arctools nodes            # One line per allocated slot
  arctools nodes --unique   # One line per distinct host`,
	RunE: runNodes,
}

func init() {
	rootCmd.AddCommand(nodesCmd)
	nodesCmd.Flags().StringVar(&nodesFile, "file", "", "Read hosts from this node file instead of $PBS_NODEFILE")
	nodesCmd.Flags().BoolVar(&nodesUnique, "unique", false, "Deduplicate hosts, preserving first-seen order")
}

func runNodes(cmd *cobra.Command, args []string) error {
	var hosts []string
	var err error
	if nodesFile != "" {
		hosts, err = nodes.ReadNodeFile(nodesFile)
	} else {
		hosts, err = nodes.Hosts()
	}
	if err != nil {
		return err
	}

	if nodesUnique {
		hosts = nodes.UniqueHosts(hosts)
	}
	for _, h := range hosts {
		fmt.Println(h)
	}
	return nil
}
