package actor_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/gopheractors/actorhive/actor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMailboxFIFO(t *testing.T) {
	t.Parallel()

	mb := actor.NewMailbox[int]()
	mb.Start()
	defer mb.Stop()

	for i := 0; i < 100; i++ {
		mb.SendC() <- i
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, i, <-mb.ReceiveC())
	}
}

func TestMailboxNeverBlocksProducer(t *testing.T) {
	t.Parallel()

	mb := actor.NewMailbox[int]()
	mb.Start()
	defer mb.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10_000; i++ {
			mb.SendC() <- i
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked sending to an unbounded mailbox")
	}

	for i := 0; i < 10_000; i++ {
		assert.Equal(t, i, <-mb.ReceiveC())
	}
}

func TestCombineStartsAndStopsAll(t *testing.T) {
	t.Parallel()

	var started, stopped atomic.Int32
	mk := func() actor.Actor {
		return actor.Idle(
			actor.OptOnStart(func() { started.Add(1) }),
			actor.OptOnStop(func() { stopped.Add(1) }),
		)
	}

	c := actor.Combine(mk(), mk(), mk())
	c.Start()
	c.Stop()

	assert.Equal(t, int32(3), started.Load())
	assert.Equal(t, int32(3), stopped.Load())
}

func TestNewMailboxesCount(t *testing.T) {
	t.Parallel()

	mm := actor.NewMailboxes[string](4)
	assert.Len(t, mm, 4)

	combined := actor.FromMailboxes(mm)
	combined.Start()
	defer combined.Stop()

	mm[2].SendC() <- "hi"
	assert.Equal(t, "hi", <-mm[2].ReceiveC())
}

func TestFanOut(t *testing.T) {
	t.Parallel()

	a := actor.NewMailbox[int]()
	b := actor.NewMailbox[int]()
	a.Start()
	b.Start()
	defer a.Stop()
	defer b.Stop()

	src := make(chan int)
	actor.FanOut(src, []actor.MailboxSender[int]{a, b})

	src <- 7
	assert.Equal(t, 7, <-a.ReceiveC())
	assert.Equal(t, 7, <-b.ReceiveC())
	close(src)
}
