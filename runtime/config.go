package runtime

import (
	"fmt"
	stdruntime "runtime"
)

// ExecutorType selects the executor implementation an ActorSystem uses.
// Thread is the only implementation this core ships (spec §6); the type
// exists so the config shape has room for alternatives without an API
// break, matching original_source's config.rs ExecutorType enum.
type ExecutorType int

const (
	// ExecutorTypeThread backs each Executor by its own goroutine.
	ExecutorTypeThread ExecutorType = iota
)

// ExecutorConfig controls how many executors an ActorSystem spawns.
type ExecutorConfig struct {
	// NumExecutors must be greater than zero. Defaults to hardware
	// concurrency.
	NumExecutors int
	ExecutorType ExecutorType
}

// Validate reports a config error, if any.
func (c ExecutorConfig) Validate() error {
	if c.NumExecutors <= 0 {
		return fmt.Errorf("runtime: num_executors must be greater than 0, got %d", c.NumExecutors)
	}
	return nil
}

// DefaultExecutorConfig returns num_executors = runtime.NumCPU() and the
// Thread executor type, per spec §6's stated defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		NumExecutors: stdruntime.NumCPU(),
		ExecutorType: ExecutorTypeThread,
	}
}

// Config configures an ActorSystem.
type Config struct {
	ExecutorConfig ExecutorConfig

	// DebugSerialize, when true, has each executor pass every payload it
	// delivers through message.RoundTrip before handing it to Receive
	// (spec §4.2's optional debug-mode measure), to catch accidental shared
	// state leaking across the actor boundary. The copy is made at
	// delivery, not when the payload is enqueued, and a payload that fails
	// to round-trip is delivered unchanged. Off by default since it costs
	// an encode/decode per delivery.
	DebugSerialize bool

	// Logger receives runtime diagnostics (resolution misses, dead
	// letters, unhandled messages, lifecycle transitions). Defaults to
	// NoopLogger.
	Logger Logger
}

// Validate validates the whole config.
func (c Config) Validate() error {
	return c.ExecutorConfig.Validate()
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		ExecutorConfig: DefaultExecutorConfig(),
		Logger:         NoopLogger,
	}
}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return NoopLogger
	}
	return c.Logger
}
