package runtime

import (
	"time"

	"github.com/gopheractors/actorhive/actor"
)

// ExecutorCommandKind tags an ExecutorCommand's variant (spec §4.4).
type ExecutorCommandKind int

const (
	CmdAssignActor ExecutorCommandKind = iota
	CmdShutdownActor
	CmdShutdownActorComplete
	CmdExecutorShutdown
)

// ExecutorCommand is the administrative message type an Executor's command
// mailbox carries.
type ExecutorCommand struct {
	Kind    ExecutorCommandKind
	Cell    *ActorCell // CmdAssignActor
	Address *Addr      // CmdShutdownActor, CmdShutdownActorComplete
}

const idleSleep = 2 * time.Millisecond

// Executor is a worker owning a disjoint set of ActorCells, pulling from
// their mailboxes in round-robin fairness and invoking their handlers
// (spec §4.4). It is itself an actor.Worker, driven by the teacher's
// actor.New/actor.Combine lifecycle kit.
type Executor struct {
	name string

	cmdMailbox actor.Mailbox[ExecutorCommand]

	cells   map[string]*ActorCell
	order   []string // deterministic round-robin rotation order
	cursor  int

	manager     *RuntimeManager
	deadLetters *DeadLetterSink
	logger      Logger
	debugSerialize bool

	exiting bool
}

// NewExecutor constructs a named Executor. Start must be called (typically
// via ActorSystem) before it processes anything.
func NewExecutor(name string, manager *RuntimeManager, deadLetters *DeadLetterSink, logger Logger, debugSerialize bool) *Executor {
	if logger == nil {
		logger = NoopLogger
	}
	return &Executor{
		name:           name,
		cmdMailbox:     actor.NewMailbox[ExecutorCommand](),
		cells:          make(map[string]*ActorCell),
		manager:        manager,
		deadLetters:    deadLetters,
		logger:         logger,
		debugSerialize: debugSerialize,
	}
}

// CommandSender returns the channel used to post ExecutorCommands to this
// executor.
func (e *Executor) CommandSender() chan<- ExecutorCommand {
	return e.cmdMailbox.SendC()
}

// AsActor wraps this Executor's DoWork loop as an actor.Actor, started and
// stopped together with the rest of the system by the façade.
func (e *Executor) AsActor() actor.Actor {
	return actor.New(e, actor.OptOnStart(e.cmdMailbox.Start))
}

// DoWork implements actor.Worker: drain pending commands, then sweep every
// live cell once for a single envelope, sleeping briefly if the sweep made
// no progress (spec §4.4's pseudocode, verbatim).
func (e *Executor) DoWork(ctx actor.Context) actor.WorkerStatus {
	e.drainCommands()

	if e.exiting {
		e.manager.notifyExecutorShutdown(e.name)
		e.cmdMailbox.Stop()
		return actor.WorkerEnd
	}

	progress := e.sweep()
	if progress == 0 {
		select {
		case <-time.After(idleSleep):
		case <-ctx.Done():
			return actor.WorkerEnd
		}
	}

	return actor.WorkerContinue
}

func (e *Executor) drainCommands() {
	for {
		select {
		case cmd := <-e.cmdMailbox.ReceiveC():
			e.handleCommand(cmd)
			if e.exiting {
				return
			}
		default:
			return
		}
	}
}

func (e *Executor) handleCommand(cmd ExecutorCommand) {
	switch cmd.Kind {
	case CmdAssignActor:
		e.assign(cmd.Cell)

	case CmdShutdownActor:
		e.initiateShutdown(cmd.Address)

	case CmdShutdownActorComplete:
		e.completeShutdown(cmd.Address)

	case CmdExecutorShutdown:
		e.exiting = true
	}
}

func (e *Executor) assign(cell *ActorCell) {
	key := cell.address.URI().Key()
	if _, dup := e.cells[key]; dup {
		panic(&ErrDuplicateURI{URI: cell.address.URI().String()})
	}

	e.logger.Debugf("%s: assigning actor %s", e.name, key)

	cell.mailbox.Start()
	e.cells[key] = cell
	e.order = append(e.order, key)

	ctx := newContext(cell, SenderKind{Tag: SenderSystem}, e)
	if starter, ok := cell.actor.(BeforeStarter); ok {
		starter.BeforeStart(ctx)
	}
}

func (e *Executor) initiateShutdown(addr *Addr) {
	key := addr.URI().Key()
	cell, ok := e.cells[key]
	if !ok || cell.shutdownInitiated {
		return
	}

	cell.shutdownInitiated = true
	cell.state.setShutdown()

	e.logger.Debugf("%s: stopping actor %s", e.name, key)

	ctx := newContext(cell, SenderKind{Tag: SenderSystem}, e)
	if stopper, ok := cell.actor.(BeforeStopper); ok {
		stopper.BeforeStop(ctx)
	}

	e.manager.notifyActorShutdown(cell.address, cell.parent)
}

func (e *Executor) completeShutdown(addr *Addr) {
	key := addr.URI().Key()
	cell, ok := e.cells[key]
	if !ok {
		return
	}

	delete(e.cells, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	cell.mailbox.Stop()

	if stopper, ok := cell.actor.(AfterStopper); ok {
		stopper.AfterStop()
	}
}

// sweep performs exactly one round-robin pass, delivering at most one
// envelope per live cell, and returns how many were delivered.
func (e *Executor) sweep() int {
	if len(e.order) == 0 {
		return 0
	}

	progress := 0
	start := e.cursor % len(e.order)

	for i := 0; i < len(e.order); i++ {
		idx := (start + i) % len(e.order)
		key := e.order[idx]

		cell, ok := e.cells[key]
		if !ok || cell.state.isShutdown() {
			continue
		}

		select {
		case env := <-cell.mailbox.ReceiveC():
			e.deliver(cell, env)
			progress++
		default:
		}
	}

	e.cursor = (start + 1) % len(e.order)
	return progress
}

func (e *Executor) deliver(cell *ActorCell, env Envelope) {
	if env.AckNonce != nil {
		e.sendAck(cell, env.Sender, *env.AckNonce)
	}

	ctx := newContext(cell, env.Sender, e)

	payload := env.Payload
	if e.debugSerialize {
		if rt, err := roundTripDebug(payload); err == nil {
			payload = rt
		}
	}

	cell.actor.Receive(ctx, payload)
}

// sendAck enqueues Ack{nonce} back toward whoever sent the acked envelope,
// per spec §4.3 step 1: Actor(addr) -> addr; Parent -> cell's parent;
// SentToSelf -> cell's own address; System -> no ack at all.
func (e *Executor) sendAck(cell *ActorCell, sender SenderKind, nonce uint32) {
	var target *Addr
	switch sender.Tag {
	case SenderActor:
		target = sender.From
	case SenderParent:
		target = cell.parent
	case SenderSelf:
		target = cell.address
	case SenderSystem:
		return
	}
	if target == nil {
		return
	}

	send(e.manager, e.deadLetters, cell.address, target, ackPayload(nonce), nil)
}
