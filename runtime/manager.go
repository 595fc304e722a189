package runtime

import (
	"github.com/google/uuid"

	"github.com/gopheractors/actorhive/actor"
	"github.com/gopheractors/actorhive/address"
)

// ManagerCommandKind tags a ManagerCommand's variant (spec §4.5).
type ManagerCommandKind int

const (
	MgrShutdown ManagerCommandKind = iota
	MgrExecutorShutdown
	MgrAssignActor
	MgrActorShutdownNotice
	MgrActorChildShutdownNotice
	MgrResolveAddress
	MgrQueryChildren
)

// ManagerCommand is the single administrative message type the
// RuntimeManager's command mailbox carries, per spec §4.5's command table.
type ManagerCommand struct {
	Kind ManagerCommandKind

	// MgrExecutorShutdown
	ExecutorName string

	// MgrAssignActor
	Cell  *ActorCell
	Reply chan<- spawnResult

	// MgrActorShutdownNotice
	ShutdownAddr   *Addr
	ShutdownParent *Addr

	// MgrActorChildShutdownNotice
	NoticeParent *Addr
	NoticeChild  *Addr

	// MgrResolveAddress
	ResolveURI   address.URI
	ResolveReply chan<- *Addr

	// MgrQueryChildren
	QueryAddr  *Addr
	QueryReply chan<- []*Addr
}

// registryEntry is everything the manager tracks about a live actor cell.
// It is the sole owner of the parent/children edges (see the note on
// ActorCell) since every read and write of it happens on the manager's own
// goroutine, serialized through its command mailbox.
type registryEntry struct {
	address     *Addr
	parent      *Addr
	children    []*Addr
	executorCmd chan<- ExecutorCommand
}

// stagingEntry tracks an in-flight cascading shutdown's outstanding
// child-ack count (spec §3's shutdown-staging entry, §4.5's wait_count).
type stagingEntry struct {
	parent    *Addr
	waitCount int
}

// RuntimeManager is the administrative loop spec §4.5 describes: it owns
// actor placement, the address/parent/child registry, and cascading
// shutdown bookkeeping. Like Executor, it's a plain actor.Worker driven by
// the teacher's lifecycle kit.
type RuntimeManager struct {
	cmdMailbox actor.Mailbox[ManagerCommand]

	executors []chan<- ExecutorCommand
	cursor    int

	registry map[string]*registryEntry
	staging  map[string]*stagingEntry

	logger Logger

	shuttingDown          bool
	executorShutdownSent  bool
	executorsAcked        int
	finished              bool
}

// NewRuntimeManager constructs a manager with no executors wired in yet;
// call SetExecutors once the executors it will place actors on have been
// constructed (the two are mutually referential: each Executor holds a
// *RuntimeManager, and the manager needs every Executor's command channel).
func NewRuntimeManager(logger Logger) *RuntimeManager {
	if logger == nil {
		logger = NoopLogger
	}
	return &RuntimeManager{
		cmdMailbox: actor.NewMailbox[ManagerCommand](),
		registry:   make(map[string]*registryEntry),
		staging:    make(map[string]*stagingEntry),
		logger:     logger,
	}
}

// SetExecutors wires the manager's round-robin placement targets. Must be
// called exactly once, before the manager's actor loop starts.
func (m *RuntimeManager) SetExecutors(executors []chan<- ExecutorCommand) {
	m.executors = executors
}

// CommandSender returns the channel used to post ManagerCommands.
func (m *RuntimeManager) CommandSender() chan<- ManagerCommand {
	return m.cmdMailbox.SendC()
}

// AsActor wraps the manager's DoWork loop as an actor.Actor.
func (m *RuntimeManager) AsActor() actor.Actor {
	return actor.New(m, actor.OptOnStart(m.cmdMailbox.Start))
}

// DoWork implements actor.Worker: block for the next command (or shutdown
// signal), handle it, and report WorkerEnd once every executor has
// confirmed it has exited following a system shutdown.
func (m *RuntimeManager) DoWork(ctx actor.Context) actor.WorkerStatus {
	select {
	case cmd := <-m.cmdMailbox.ReceiveC():
		m.handle(cmd)
	case <-ctx.Done():
		return actor.WorkerEnd
	}

	if m.finished {
		m.cmdMailbox.Stop()
		return actor.WorkerEnd
	}
	return actor.WorkerContinue
}

func (m *RuntimeManager) handle(cmd ManagerCommand) {
	switch cmd.Kind {
	case MgrShutdown:
		m.handleShutdown()

	case MgrExecutorShutdown:
		m.handleExecutorShutdown(cmd.ExecutorName)

	case MgrAssignActor:
		m.handleAssignActor(cmd.Cell, cmd.Reply)

	case MgrActorShutdownNotice:
		m.handleActorShutdownNotice(cmd.ShutdownAddr, cmd.ShutdownParent)

	case MgrActorChildShutdownNotice:
		m.handleChildShutdownNotice(cmd.NoticeParent, cmd.NoticeChild)

	case MgrResolveAddress:
		m.handleResolveAddress(cmd.ResolveURI, cmd.ResolveReply)

	case MgrQueryChildren:
		m.handleQueryChildren(cmd.QueryAddr, cmd.QueryReply)
	}
}

func (m *RuntimeManager) pickExecutor() chan<- ExecutorCommand {
	e := m.executors[m.cursor%len(m.executors)]
	m.cursor++
	return e
}

// handleAssignActor places cell on an executor. Per spec §4.4/§7, URI
// collisions are not rejected here: the manager has no authority to decide
// that, it just routes. A colliding key is forwarded to the executor that
// already owns it instead of a freshly round-robin-picked one, so the
// fail-fast panic spec.md §7 mandates ("reject duplicates... in the executor
// receiving AssignActor") happens where it's supposed to, and is guaranteed
// to fire: the existing cell's CmdAssignActor is strictly ahead of this one
// in that executor's command mailbox, so it has already been assigned by
// the time this one is processed.
func (m *RuntimeManager) handleAssignActor(cell *ActorCell, reply chan<- spawnResult) {
	if m.shuttingDown {
		reply <- spawnResult{err: &ErrUnassignableActor{Cause: "runtime is shutting down"}}
		return
	}

	key := cell.address.URI().Key()
	reqID := uuid.New()

	existing, dup := m.registry[key]

	var execCmd chan<- ExecutorCommand
	if dup {
		execCmd = existing.executorCmd
		m.logger.Debugf("assign %s: forwarding duplicate %s to its owning executor (request %s)", key, cell.address, reqID)
	} else {
		execCmd = m.pickExecutor()
		m.logger.Debugf("assign %s: placing %s (request %s)", key, cell.address, reqID)
	}

	cell.address.SetMailbox(cell.mailbox.SendC())

	if !dup {
		m.registry[key] = &registryEntry{
			address:     cell.address,
			parent:      cell.parent,
			executorCmd: execCmd,
		}

		if cell.parent != nil {
			if parentEntry, ok := m.registry[cell.parent.URI().Key()]; ok {
				parentEntry.children = append(parentEntry.children, cell.address)
			}
		}
	}

	execCmd <- ExecutorCommand{Kind: CmdAssignActor, Cell: cell}

	reply <- spawnResult{addr: cell.address}
}

// Resolve looks up a live actor by URI through the manager's own goroutine,
// the synchronous request/response round-trip spec §4.1 requires for an
// unresolved address's first send.
func (m *RuntimeManager) Resolve(uri address.URI) (*Addr, bool) {
	reply := make(chan *Addr, 1)
	m.cmdMailbox.SendC() <- ManagerCommand{Kind: MgrResolveAddress, ResolveURI: uri, ResolveReply: reply}
	addr := <-reply
	return addr, addr != nil
}

func (m *RuntimeManager) handleShutdown() {
	if m.shuttingDown {
		return
	}
	m.shuttingDown = true

	if len(m.registry) == 0 {
		m.beginExecutorShutdown()
		return
	}

	for _, entry := range m.registry {
		if entry.parent == nil {
			entry.executorCmd <- ExecutorCommand{Kind: CmdShutdownActor, Address: entry.address}
		}
	}
}

// handleActorShutdownNotice runs once a cell's BeforeStop has completed
// (spec §4.5): compute wait_count from the children still present in the
// registry — rather than the cell's full children snapshot — so the
// cascade always reaches zero even if a child had already independently
// shut itself down and been forgotten before its parent began stopping.
func (m *RuntimeManager) handleActorShutdownNotice(addr, parent *Addr) {
	entry, ok := m.registry[addr.URI().Key()]
	if !ok {
		return
	}

	live := entry.children[:0:0]
	for _, child := range entry.children {
		if _, stillThere := m.registry[child.URI().Key()]; stillThere {
			live = append(live, child)
		}
	}

	if len(live) == 0 {
		m.completeActorShutdown(addr)
		return
	}

	m.staging[addr.URI().Key()] = &stagingEntry{parent: parent, waitCount: len(live)}
	for _, child := range live {
		if childEntry, ok := m.registry[child.URI().Key()]; ok {
			childEntry.executorCmd <- ExecutorCommand{Kind: CmdShutdownActor, Address: child}
		}
	}
}

func (m *RuntimeManager) handleChildShutdownNotice(parent, child *Addr) {
	key := parent.URI().Key()
	st, ok := m.staging[key]
	if !ok {
		return
	}

	st.waitCount--
	if st.waitCount > 0 {
		return
	}

	delete(m.staging, key)
	m.completeActorShutdown(parent)
}

// completeActorShutdown finalizes a cell whose children have all
// acknowledged shutdown (or had none): tells its owning executor to tear it
// down, then either notifies its own parent (continuing the cascade
// upward) or, if it was a root, checks whether the whole system has now
// drained: once no actor is left in the registry or staging, it begins
// executor shutdown on its own, whether or not Shutdown was requested.
func (m *RuntimeManager) completeActorShutdown(addr *Addr) {
	entry, ok := m.registry[addr.URI().Key()]
	if !ok {
		return
	}
	delete(m.registry, addr.URI().Key())

	entry.executorCmd <- ExecutorCommand{Kind: CmdShutdownActorComplete, Address: addr}

	if entry.parent != nil {
		m.handleChildShutdownNotice(entry.parent, addr)
		return
	}

	if len(m.registry) == 0 && len(m.staging) == 0 {
		m.shuttingDown = true
		m.beginExecutorShutdown()
	}
}

func (m *RuntimeManager) beginExecutorShutdown() {
	if m.executorShutdownSent {
		return
	}
	m.executorShutdownSent = true

	for _, execCmd := range m.executors {
		execCmd <- ExecutorCommand{Kind: CmdExecutorShutdown}
	}
}

func (m *RuntimeManager) handleExecutorShutdown(name string) {
	m.executorsAcked++
	m.logger.Debugf("runtime: executor %s confirmed shutdown (%d/%d)", name, m.executorsAcked, len(m.executors))
	if m.executorsAcked >= len(m.executors) {
		m.finished = true
	}
}

func (m *RuntimeManager) handleResolveAddress(uri address.URI, reply chan<- *Addr) {
	entry, ok := m.registry[uri.Key()]
	if !ok {
		reply <- nil
		return
	}
	reply <- entry.address
}

func (m *RuntimeManager) handleQueryChildren(addr *Addr, reply chan<- []*Addr) {
	entry, ok := m.registry[addr.URI().Key()]
	if !ok {
		reply <- nil
		return
	}
	snap := make([]*Addr, len(entry.children))
	copy(snap, entry.children)
	reply <- snap
}

// notifyActorShutdown posts an ActorShutdownNotice, called by an Executor
// once a cell's BeforeStop hook has run.
func (m *RuntimeManager) notifyActorShutdown(addr, parent *Addr) {
	m.cmdMailbox.SendC() <- ManagerCommand{Kind: MgrActorShutdownNotice, ShutdownAddr: addr, ShutdownParent: parent}
}

// notifyExecutorShutdown posts an ExecutorShutdown acknowledgement, called
// by an Executor right before its own DoWork loop returns WorkerEnd.
func (m *RuntimeManager) notifyExecutorShutdown(name string) {
	m.cmdMailbox.SendC() <- ManagerCommand{Kind: MgrExecutorShutdown, ExecutorName: name}
}
