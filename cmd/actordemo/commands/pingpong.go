package commands

import (
	"fmt"

	"github.com/gopheractors/actorhive/examples"
	"github.com/spf13/cobra"
)

var pingpongHits int32

var pingpongCmd = &cobra.Command{
	Use:   "pingpong",
	Short: "Play a ping-pong rally between two actors",
	RunE:  runPingPong,
}

func init() {
	pingpongCmd.Flags().Int32Var(&pingpongHits, "hits", 10, "number of hits to rally before stopping")
}

func runPingPong(cmd *cobra.Command, args []string) error {
	final, err := examples.RunPingPong(demoLogger(), pingpongHits)
	if err != nil {
		return err
	}
	fmt.Printf("rally ended after %d hits\n", final)
	return nil
}
