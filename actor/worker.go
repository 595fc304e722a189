package actor

// WorkerStatus is returned by Worker.DoWork to tell the driving Actor
// whether to keep calling DoWork or to end the loop.
type WorkerStatus int32

const (
	// WorkerContinue indicates DoWork should be invoked again.
	WorkerContinue WorkerStatus = iota
	// WorkerEnd indicates the worker is finished; the Actor loop exits.
	WorkerEnd
)

// Worker does one unit of cooperative work per call. Implementations should
// not block longer than necessary to make progress, and must respect
// ctx.Done() so Stop() can return promptly.
type Worker interface {
	DoWork(ctx Context) WorkerStatus
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx Context) WorkerStatus

// DoWork implements Worker.
func (f WorkerFunc) DoWork(ctx Context) WorkerStatus {
	return f(ctx)
}

// Stopper is an optional Worker extension: a Worker implementing it has
// OnStop called once its DoWork loop has exited, before Stop or Await
// unblocks. mailboxWorker uses this to close its channels only once nothing
// can still be calling DoWork.
type Stopper interface {
	OnStop()
}
