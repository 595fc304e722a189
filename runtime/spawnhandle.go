package runtime

import "sync"

// spawnResult is what the manager's AssignActor handler replies with: the
// resolved address on success, or an ErrUnassignableActor on failure. A
// duplicate URI is not reported here: the manager replies with the address
// and the owning executor panics with ErrDuplicateURI on assignment.
type spawnResult struct {
	addr *Addr
	err  error
}

// SpawnHandle is returned by SpawnRootActor/SpawnChild immediately, before
// the manager has necessarily placed the new actor (spec §4.6: spawning is
// asynchronous with respect to the caller). It caches the manager's reply
// the first time it's observed, so repeated calls are cheap.
type SpawnHandle struct {
	mu     sync.Mutex
	readyC chan spawnResult

	done bool
	addr *Addr
	err  error
}

func newSpawnHandle() (*SpawnHandle, chan<- spawnResult) {
	c := make(chan spawnResult, 1)
	return &SpawnHandle{readyC: c}, c
}

// Ready performs a non-blocking check for the manager's placement reply. ok
// is false until the reply has arrived.
func (h *SpawnHandle) Ready() (addr *Addr, err error, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return h.addr, h.err, true
	}

	select {
	case res := <-h.readyC:
		h.done = true
		h.addr, h.err = res.addr, res.err
		return h.addr, h.err, true
	default:
		return nil, nil, false
	}
}

// AwaitReady blocks until the manager has placed (or rejected) the spawn
// and returns its outcome.
func (h *SpawnHandle) AwaitReady() (*Addr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return h.addr, h.err
	}

	res := <-h.readyC
	h.done = true
	h.addr, h.err = res.addr, res.err
	return h.addr, h.err
}
