package commands

import "github.com/gopheractors/actorhive/runtime"

// demoLogger returns StdLogger when -v/--verbose is set, nil (NoopLogger via
// runtime.Init's default) otherwise.
func demoLogger() runtime.Logger {
	if !verbose {
		return nil
	}
	return runtime.NewStdLogger("actordemo")
}
