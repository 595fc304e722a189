package runtime

import (
	"github.com/gopheractors/actorhive/address"
	"github.com/gopheractors/actorhive/message"
)

// Addr is an actor address resolved to a mailbox send channel — the T in
// address.Address[T] for this runtime.
type Addr = address.Address[chan<- Envelope]

// SenderKindTag classifies where an Envelope's sender field came from.
type SenderKindTag int

const (
	// SenderSystem marks an envelope with no originating actor.
	SenderSystem SenderKindTag = iota
	// SenderParent marks an envelope sent by the receiver's direct parent.
	SenderParent
	// SenderSelf marks an envelope an actor sent to itself.
	SenderSelf
	// SenderActor marks an envelope from an arbitrary other actor, whose
	// address is carried along since it isn't otherwise derivable.
	SenderActor
)

// SenderKind is the envelope's compact sender representation (spec §3):
// System/Parent/SentToSelf avoid carrying an address when the receiver can
// derive it; SenderActor carries the address because it can't be.
type SenderKind struct {
	Tag  SenderKindTag
	From *Addr // only populated when Tag == SenderActor
}

func (s SenderKind) String() string {
	switch s.Tag {
	case SenderActor:
		return s.From.String()
	case SenderParent:
		return "Parent"
	case SenderSelf:
		return "Self"
	default:
		return "System"
	}
}

// Envelope carries a payload plus sender provenance and an optional
// acknowledgement nonce (spec §3).
type Envelope struct {
	Sender   SenderKind
	Payload  message.Payload
	AckNonce *uint32
}

// NewEnvelope classifies from relative to receiver and builds the envelope,
// exactly per spec §3: nil sender -> System; equal URIs -> SentToSelf;
// sender directly-parents receiver -> Parent (the one case where the
// receiver can derive the sender's address itself, from its own cell, so
// the envelope need not carry it); otherwise Actor(from). A message from a
// child to its parent is classified Actor, not Parent, because the parent
// can have many children and needs from's address to know which one to
// reply to — only Context.Sender()'s SenderActor branch carries that.
func NewEnvelope(from, receiver *Addr, payload message.Payload) Envelope {
	if from == nil {
		return Envelope{Sender: SenderKind{Tag: SenderSystem}, Payload: payload}
	}

	switch {
	case from.URI().Equal(receiver.URI()):
		return Envelope{Sender: SenderKind{Tag: SenderSelf}, Payload: payload}
	case from.IsDirectParentOf(receiver):
		return Envelope{Sender: SenderKind{Tag: SenderParent}, Payload: payload}
	default:
		return Envelope{Sender: SenderKind{Tag: SenderActor, From: from}, Payload: payload}
	}
}
