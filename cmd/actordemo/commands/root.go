package commands

import (
	"github.com/spf13/cobra"
)

// verbose switches the demo scenarios from the no-op logger to StdLogger,
// printing executor/manager debug activity to stderr.
var verbose bool

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "actordemo",
	Short: "Run actorhive example scenarios",
	Long: `actordemo runs the scenarios under the examples/ package as
standalone commands: a greeter that sends itself a greeting, a ping-pong rally between two
actors, a work distributor handing out acked work items, and a three-state
greet machine.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"log executor and manager activity to stderr",
	)

	rootCmd.AddCommand(greeterCmd)
	rootCmd.AddCommand(pingpongCmd)
	rootCmd.AddCommand(distributeCmd)
	rootCmd.AddCommand(greetmachineCmd)
}
