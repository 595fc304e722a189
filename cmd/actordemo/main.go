// Command actordemo runs the runnable scenarios under examples/ from the
// command line, for exercising actorhive without writing Go.
package main

import (
	"fmt"
	"os"

	"github.com/gopheractors/actorhive/cmd/actordemo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
