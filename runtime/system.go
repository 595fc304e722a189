package runtime

import (
	"fmt"

	"github.com/gopheractors/actorhive/actor"
	"github.com/gopheractors/actorhive/address"
	"github.com/gopheractors/actorhive/message"
)

// ActorSystem is the top-level façade spec §4.6 describes: it owns the
// RuntimeManager and its Executors as one combined lifecycle, and is the
// entry point user code spawns root actors through.
type ActorSystem struct {
	manager   *RuntimeManager
	executors []*Executor
	combined  actor.Actor

	deadLetters *DeadLetterSink
	logger      Logger
}

// Init builds and starts an ActorSystem per config (spec §6). It spawns
// config.ExecutorConfig.NumExecutors executors and one RuntimeManager, and
// starts them all together via the teacher's actor.Combine.
func Init(config Config) (*ActorSystem, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.logger()
	deadLetters := NewDeadLetterSink(logger)

	n := config.ExecutorConfig.NumExecutors
	executors := make([]*Executor, n)
	execSenders := make([]chan<- ExecutorCommand, n)

	manager := NewRuntimeManager(logger)
	for i := 0; i < n; i++ {
		executors[i] = NewExecutor(fmt.Sprintf("executor-%d", i), manager, deadLetters, logger, config.DebugSerialize)
		execSenders[i] = executors[i].CommandSender()
	}
	manager.SetExecutors(execSenders)

	actors := make([]actor.Actor, 0, n+1)
	actors = append(actors, manager.AsActor())
	for _, e := range executors {
		actors = append(actors, e.AsActor())
	}

	sys := &ActorSystem{
		manager:     manager,
		executors:   executors,
		combined:    actor.Combine(actors...),
		deadLetters: deadLetters,
		logger:      logger,
	}

	deadLetters.Start()
	sys.combined.Start()

	return sys, nil
}

// SpawnRootActor spawns a new top-level actor, built by calling init with
// initMsg. M is the one-shot initialization message type — a package-level
// generic function since Go has no generic methods (spec §4.6's
// spawn_root_actor<A, M>, adapted).
func SpawnRootActor[M any](sys *ActorSystem, name string, init func(M) Actor, initMsg M) *SpawnHandle {
	a := init(initMsg)
	addr := address.NewRootAddress[chan<- Envelope](name)
	cell := newActorCell(a, addr, nil)

	handle, replyC := newSpawnHandle()
	sys.manager.CommandSender() <- ManagerCommand{Kind: MgrAssignActor, Cell: cell, Reply: replyC}
	return handle
}

// ResolveAddress looks up a live top-level or nested actor by URI.
func (s *ActorSystem) ResolveAddress(uri address.URI) (*Addr, bool) {
	return s.manager.Resolve(uri)
}

// Send delivers payload to to as the system itself (SenderKind System),
// for code outside any actor that needs to kick off a conversation —
// typically a test harness or the demo CLI's entry point. Like Context.Send,
// an unresolved to blocks on the manager's registry once before falling
// back to the dead-letter sink.
func (s *ActorSystem) Send(to *Addr, payload message.Payload) {
	send(s.manager, s.deadLetters, nil, to, payload, nil)
}

// DeadLetters returns a channel of otherwise-undeliverable payloads, for
// tests and diagnostics that want to observe them directly.
func (s *ActorSystem) DeadLetters() <-chan DeadLetter {
	return s.deadLetters.Observe()
}

// Shutdown begins cascading shutdown of every actor tree and, once the
// whole hierarchy has drained, stops every executor and the manager
// itself. It does not block; call AwaitShutdown to join.
func (s *ActorSystem) Shutdown() {
	s.manager.CommandSender() <- ManagerCommand{Kind: MgrShutdown}
}

// AwaitShutdown blocks until every actor, executor, and the manager have
// exited. It joins the already-running loops (via actor.Actor.Await)
// rather than forcing them, so the cascade initiated by Shutdown is never
// cut short.
func (s *ActorSystem) AwaitShutdown() {
	s.combined.Await()
	s.deadLetters.Stop()
}
