package actor

// Idle returns an Actor that does no work of its own; it exists purely to
// run the OptOnStart/OptOnStop hooks attached via opt through the standard
// Actor lifecycle. Used by the channel-backed Mailbox variant to close its
// channel on Stop; its goroutine does nothing but wait for Stop.
func Idle(opt ...Option) Actor {
	return New(WorkerFunc(func(ctx Context) WorkerStatus {
		<-ctx.Done()
		return WorkerEnd
	}), opt...)
}
