package runtime

import (
	"github.com/gopheractors/actorhive/message"
)

// ackPayload builds the Ack payload sent back for an acked envelope.
func ackPayload(nonce uint32) message.Payload {
	return message.Ack{Nonce: nonce}
}

// roundTripDebug exposes message.RoundTrip under this package's naming, used
// by the Executor's optional debug-serialize delivery path.
func roundTripDebug(p message.Payload) (message.Payload, error) {
	return message.RoundTrip(p)
}

// send delivers payload from "from" to "to", classifying the envelope via
// NewEnvelope and diverting to the dead-letter sink when the target address
// can't be resolved or its mailbox has already been torn down (spec §4.1,
// §4.2: "a resolution miss or closed mailbox never panics the sender").
//
// If to's mailbox slot is empty, this blocks once on a synchronous
// request/response round-trip to the manager's registry (spec §4.1, §5:
// "Context::send may block once per address on the first send to an
// unresolved address") and caches a hit onto to itself via SetMailbox, so
// every subsequent send through this same *Addr resolves instantly.
func send(manager *RuntimeManager, deadLetters *DeadLetterSink, from, to *Addr, payload message.Payload, ackNonce *uint32) {
	mb, ok := to.Mailbox()
	if !ok {
		if live, hit := manager.Resolve(to.URI()); hit {
			if ch, chOk := live.Mailbox(); chOk {
				to.SetMailbox(ch)
				mb, ok = ch, true
			}
		}
	}
	if !ok {
		deadLetters.Divert(to.URI(), payload)
		return
	}

	env := NewEnvelope(from, to, payload)
	env.AckNonce = ackNonce

	if !trySend(mb, env) {
		deadLetters.Divert(to.URI(), payload)
	}
}

// trySend enqueues env on ch, recovering from the "send on closed channel"
// panic a torn-down cell's mailbox can raise if the send races its own
// shutdown, converting it into a plain false return (spec §4.2).
func trySend(ch chan<- Envelope, env Envelope) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	ch <- env
	return true
}
