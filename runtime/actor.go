package runtime

import (
	"sync/atomic"

	"github.com/gopheractors/actorhive/actor"
	"github.com/gopheractors/actorhive/message"
)

// Actor is the only method a user actor must implement. The remaining
// lifecycle hooks are optional, discovered by interface assertion — Go's
// substitute for the spec's "polymorphic over a capability set" design note
// (§9): no base class or inheritance, just an interface an actor can
// partially implement.
type Actor interface {
	Receive(ctx *Context, payload message.Payload)
}

// BeforeStarter is invoked once after assignment, before any envelope is
// delivered, with ctx.SenderKind().Tag == SenderSystem (so ctx.Sender()
// panics there).
type BeforeStarter interface {
	BeforeStart(ctx *Context)
}

// BeforeStopper runs after shutdown has been initiated for this actor, but
// before its children are stopped.
type BeforeStopper interface {
	BeforeStop(ctx *Context)
}

// AfterStopper runs once the cell has been removed from its executor.
type AfterStopper interface {
	AfterStop()
}

// cellState is the bitset spec §3 describes; it only ever holds the
// Shutdown bit today but is kept as a small bitset type so a future bit can
// be added without an API break.
type cellState struct {
	bits atomic.Uint32
}

const stateShutdown uint32 = 1 << 0

func (s *cellState) setShutdown() {
	s.bits.Or(stateShutdown)
}

func (s *cellState) isShutdown() bool {
	return s.bits.Load()&stateShutdown != 0
}

// ActorCell owns a user actor together with everything the runtime needs to
// drive it: its mailbox, its place in the address hierarchy, and its
// lifecycle bits. Per spec §3/§5, only the executor thread that owns a cell
// ever touches its fields once assigned — there is deliberately no mutex
// here.
// Note: the children list is deliberately not a field here. Spawning a
// child writes into its parent's registry entry from the RuntimeManager's
// own goroutine (spec §4.5's AssignActor handler), which may run
// concurrently with the parent's owning executor reading its cell. Rather
// than add a mutex to the one struct spec §3/§5 says is executor-exclusive,
// the children list lives in the manager's registry, which already owns it
// and already serializes every write/read through its single command loop.
type ActorCell struct {
	actor   Actor
	mailbox actor.Mailbox[Envelope]

	address *Addr
	parent  *Addr

	state             cellState
	shutdownInitiated bool // before_stop already ran / notice already sent
	ackCounter        uint32
	childCounter      int
}

func newActorCell(a Actor, address, parent *Addr) *ActorCell {
	return &ActorCell{
		actor:   a,
		mailbox: actor.NewMailbox[Envelope](),
		address: address,
		parent:  parent,
	}
}

func (c *ActorCell) nextAckNonce() uint32 {
	c.ackCounter++
	return c.ackCounter
}

// nextChildIndex mints a sibling index unique among this cell's children.
// Safe without synchronization: only the owning executor's goroutine ever
// calls this, from within Receive/BeforeStart.
func (c *ActorCell) nextChildIndex() int {
	idx := c.childCounter
	c.childCounter++
	return idx
}
