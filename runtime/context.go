package runtime

import (
	"github.com/gopheractors/actorhive/address"
	"github.com/gopheractors/actorhive/message"
)

// Context is the per-delivery handle passed to Actor.Receive (and the
// optional lifecycle hooks): it carries the sender's provenance and lets
// the actor send, spawn children, inspect its place in the hierarchy, and
// request its own shutdown (spec §4.3, §4.6).
type Context struct {
	cell   *ActorCell
	sender SenderKind
	exec   *Executor
}

func newContext(cell *ActorCell, sender SenderKind, exec *Executor) *Context {
	return &Context{cell: cell, sender: sender, exec: exec}
}

// Address returns the receiving actor's own address.
func (c *Context) Address() *Addr {
	return c.cell.address
}

// Parent returns the receiving actor's parent address, and false for a
// root actor.
func (c *Context) Parent() (*Addr, bool) {
	return c.cell.parent, c.cell.parent != nil
}

// SenderKind returns the raw classification of who sent the current
// envelope — the one way to distinguish System-originated delivery
// (assignment, shutdown) from an addressable sender without Sender()
// panicking.
func (c *Context) SenderKind() SenderKind {
	return c.sender
}

// Sender returns the address of whoever sent the envelope currently being
// handled. It panics if the envelope came from the system itself (e.g. the
// BeforeStart/BeforeStop hooks), since there is no address to hand back —
// callers that may run during those hooks should check SenderKind first.
func (c *Context) Sender() *Addr {
	switch c.sender.Tag {
	case SenderActor:
		return c.sender.From
	case SenderParent:
		return c.cell.parent
	case SenderSelf:
		return c.cell.address
	default:
		panic("runtime: Context.Sender called on a system-originated envelope")
	}
}

// Children returns a snapshot of the receiving actor's current children, by
// round-tripping through the manager, which is the sole owner of the
// parent/child edges.
func (c *Context) Children() []*Addr {
	reply := make(chan []*Addr, 1)
	c.exec.manager.CommandSender() <- ManagerCommand{Kind: MgrQueryChildren, QueryAddr: c.cell.address, QueryReply: reply}
	return <-reply
}

// ResolveAddress looks up a live actor by URI, for callers holding a URI
// without an already-resolved *Addr (e.g. parsed from configuration).
func (c *Context) ResolveAddress(uri address.URI) (*Addr, bool) {
	return c.exec.manager.Resolve(uri)
}

// Send delivers payload to to, with this actor as sender. If to hasn't been
// resolved yet, this blocks on a synchronous round-trip to the manager's
// registry before falling back to the dead-letter sink (spec §4.1/§5).
func (c *Context) Send(to *Addr, payload message.Payload) {
	send(c.exec.manager, c.exec.deadLetters, c.cell.address, to, payload, nil)
}

// SendWithAck delivers payload to to and requests an Ack, returning the
// nonce the eventual Ack{Nonce} will carry (spec §4.2/§4.3).
func (c *Context) SendWithAck(to *Addr, payload message.Payload) uint32 {
	nonce := c.cell.nextAckNonce()
	send(c.exec.manager, c.exec.deadLetters, c.cell.address, to, payload, &nonce)
	return nonce
}

// Unhandled is the default behavior for a payload an actor's Receive
// doesn't recognize: log it at debug level with the receiver, sender, and
// encoded size (spec §4.3). Actors call it themselves from their type
// switch's default case.
func (c *Context) Unhandled(payload message.Payload) {
	c.exec.logger.Debugf("unhandled message at %s from %s (%d bytes)",
		c.cell.address, c.sender, message.EncodedLen(payload))
}

// Shutdown requests that this actor be stopped, beginning the cascading
// shutdown protocol at this cell (spec §4.5). It is idempotent and safe to
// call multiple times or from multiple deliveries.
func (c *Context) Shutdown() {
	c.exec.CommandSender() <- ExecutorCommand{Kind: CmdShutdownActor, Address: c.cell.address}
}

// SpawnChild spawns a new child actor of the receiving actor. M is the
// one-shot initialization message type init consumes to build the Actor
// value — Go has no generic methods, so this is a package-level function
// rather than a method on Context (spec §4.6's spawn_child, adapted).
func SpawnChild[M any](ctx *Context, name string, init func(M) Actor, initMsg M) *SpawnHandle {
	a := init(initMsg)
	addr := address.NewChildAddress[chan<- Envelope](ctx.cell.address, name, ctx.cell.nextChildIndex())
	cell := newActorCell(a, addr, ctx.cell.address)

	handle, replyC := newSpawnHandle()
	ctx.exec.manager.CommandSender() <- ManagerCommand{Kind: MgrAssignActor, Cell: cell, Reply: replyC}
	return handle
}
