package runtime

import (
	"github.com/gopheractors/actorhive/actor"
	"github.com/gopheractors/actorhive/address"
	"github.com/gopheractors/actorhive/message"
)

// DeadLetter is an envelope payload that could not be delivered, along with
// the URI it was addressed to.
type DeadLetter struct {
	URI     string
	Payload message.Payload
}

// DeadLetterSink is where sends are diverted when resolution misses or a
// mailbox send fails (spec §4.1, §7: "logged; specific dead-letter actor is
// not required"). Internally it's an inbox Mailbox fanned out — via the
// teacher's actor.FanOut — to a logging consumer and an "observe" mailbox
// tests can read from directly instead of scraping log output.
type DeadLetterSink struct {
	inbox   actor.Mailbox[DeadLetter]
	logMB   actor.Mailbox[DeadLetter]
	observe actor.Mailbox[DeadLetter]
	logger  Logger
}

// NewDeadLetterSink constructs a sink logging through logger (NoopLogger if
// nil).
func NewDeadLetterSink(logger Logger) *DeadLetterSink {
	if logger == nil {
		logger = NoopLogger
	}
	return &DeadLetterSink{
		inbox:   actor.NewMailbox[DeadLetter](),
		logMB:   actor.NewMailbox[DeadLetter](),
		observe: actor.NewMailbox[DeadLetter](),
		logger:  logger,
	}
}

// Start begins the sink's fan-out and logging goroutines.
func (s *DeadLetterSink) Start() {
	s.inbox.Start()
	s.logMB.Start()
	s.observe.Start()

	actor.FanOut[DeadLetter](s.inbox.ReceiveC(), []actor.MailboxSender[DeadLetter]{s.logMB, s.observe})

	go func() {
		for dl := range s.logMB.ReceiveC() {
			s.logger.Warnf("dead letter: undeliverable message to %s (%d bytes)", dl.URI, message.EncodedLen(dl.Payload))
		}
	}()
}

// Stop stops the sink's mailboxes in dependency order: the inbox first so
// the fan-out goroutine sees its source channel close and exits, then the
// two fan-out targets. Dead letters still queued in a mailbox when it stops
// are discarded, not drained.
func (s *DeadLetterSink) Stop() {
	s.inbox.Stop()
	s.logMB.Stop()
	s.observe.Stop()
}

// Divert enqueues an undeliverable payload addressed to uri.
func (s *DeadLetterSink) Divert(uri address.URI, payload message.Payload) {
	s.inbox.SendC() <- DeadLetter{URI: uri.String(), Payload: payload}
}

// Observe returns a channel tests can read diverted dead letters from,
// without parsing log output.
func (s *DeadLetterSink) Observe() <-chan DeadLetter {
	return s.observe.ReceiveC()
}
