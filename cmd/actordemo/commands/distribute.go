package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gopheractors/actorhive/examples"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	distributeWorkers int
	distributeItems   int
)

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Hand out acked work items to a pool of workers",
	RunE:  runDistribute,
}

func init() {
	distributeCmd.Flags().IntVar(&distributeWorkers, "workers", 3, "number of worker actors")
	distributeCmd.Flags().IntVar(&distributeItems, "items", 10, "number of work items to distribute")
}

func runDistribute(cmd *cobra.Command, args []string) error {
	result, err := examples.RunWorkDistributor(demoLogger(), distributeWorkers, distributeItems)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Worker", "Items Assigned"})
	for i, n := range result.Assigned {
		table.Append([]string{fmt.Sprintf("worker-%d", i), strconv.Itoa(n)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(distributeItems)})
	table.Render()

	return nil
}
