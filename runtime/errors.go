package runtime

import "fmt"

// ErrUnassignableActor is reported through a SpawnHandle when the manager
// could not place an actor on any executor (spec §7).
type ErrUnassignableActor struct {
	Cause string
}

func (e *ErrUnassignableActor) Error() string {
	return fmt.Sprintf("runtime: unassignable actor: %s", e.Cause)
}

// ErrDuplicateURI is the panic payload an Executor raises when AssignActor
// names a URI it already hosts (spec §7: "programmer error... fail fast").
type ErrDuplicateURI struct {
	URI string
}

func (e *ErrDuplicateURI) Error() string {
	return fmt.Sprintf("runtime: duplicate actor uri on assignment: %s", e.URI)
}
