package message

// Ack is the core's one built-in system message (spec §6). It is dispatched
// through ordinary mailboxes like any other payload; interpreting it is left
// entirely to the receiving actor.
type Ack struct {
	Nonce uint32
}
