package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gopheractors/actorhive/address"
)

// TestExecutorAssignPanicsOnDuplicateURI exercises spec.md §7/§8 Scenario 5
// directly against Executor.assign, the actual site of the fail-fast panic:
// RuntimeManager.handleAssignActor forwards a colliding URI straight to the
// executor that already owns it (see its doc comment) rather than rejecting
// it itself, so this is the call that must panic.
func TestExecutorAssignPanicsOnDuplicateURI(t *testing.T) {
	exec := NewExecutor("executor-0", nil, NewDeadLetterSink(NoopLogger), NoopLogger, false)

	addr := address.NewRootAddress[chan<- Envelope]("collider")
	first := newActorCell(noopActor{}, addr, nil)
	second := newActorCell(noopActor{}, addr, nil)

	assert.NotPanics(t, func() { exec.assign(first) })
	t.Cleanup(func() { exec.completeShutdown(addr) })

	assert.PanicsWithValue(t, &ErrDuplicateURI{URI: addr.URI().String()}, func() {
		exec.assign(second)
	})
}
