package commands

import (
	"fmt"

	"github.com/gopheractors/actorhive/examples"
	"github.com/spf13/cobra"
)

var greeterGreeting string

var greeterCmd = &cobra.Command{
	Use:   "greeter",
	Short: "Have a root actor send itself a greeting and log it",
	RunE:  runGreeter,
}

func init() {
	greeterCmd.Flags().StringVar(&greeterGreeting, "greeting", "Hi", "greeting the actor sends itself")
}

func runGreeter(cmd *cobra.Command, args []string) error {
	heard, err := examples.RunGreeter(demoLogger(), greeterGreeting)
	if err != nil {
		return err
	}
	fmt.Println(heard)
	return nil
}
