package commands

import (
	"fmt"

	"github.com/gopheractors/actorhive/examples"
	"github.com/spf13/cobra"
)

var greetmachineTicks int

var greetmachineCmd = &cobra.Command{
	Use:   "greetmachine",
	Short: "Tick a three-state greet machine and print its outputs",
	RunE:  runGreetMachine,
}

func init() {
	greetmachineCmd.Flags().IntVar(&greetmachineTicks, "ticks", 4, "number of ticks to send")
}

func runGreetMachine(cmd *cobra.Command, args []string) error {
	out, err := examples.RunGreetMachine(demoLogger(), greetmachineTicks)
	if err != nil {
		return err
	}
	for _, s := range out {
		fmt.Println(s)
	}
	return nil
}
