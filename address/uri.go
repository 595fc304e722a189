// Package address implements the location-transparent addressing scheme
// actors are identified by: a scheme-tagged, tree-structured URI plus the
// interior-mutable resolved-mailbox slot hung off it.
package address

import (
	"errors"
	"fmt"
	"strings"
)

// Scheme is the transport tag of a URI. Only Local is ever resolvable by
// this runtime; Remote is reserved so the grammar has a place for
// network-addressed actors without the core implementing them.
type Scheme int

const (
	Local Scheme = iota
	Remote
)

func (s Scheme) String() string {
	switch s {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "unknown"
	}
}

// ErrInvalidURI is returned by Parse when the input doesn't match the
// "<scheme>://seg1/seg2/..." grammar.
var ErrInvalidURI = errors.New("address: invalid uri")

// URI identifies an actor: a scheme plus an ordered, non-empty sequence of
// path segments. URIs are immutable; every derived operation returns a new
// value.
type URI struct {
	scheme   Scheme
	segments []string
}

// New constructs a URI from a scheme and at least one non-empty segment. It
// panics on an empty segment list or a segment containing "/" — both are
// programmer errors, never data from the wire (there is no wire).
func New(scheme Scheme, segments ...string) URI {
	if len(segments) == 0 {
		panic("address: uri must have at least one path segment")
	}
	cp := make([]string, len(segments))
	for i, s := range segments {
		if s == "" {
			panic("address: uri path segment must not be empty")
		}
		if strings.Contains(s, "/") {
			panic("address: uri path segment must not contain '/'")
		}
		cp[i] = s
	}

	return URI{scheme: scheme, segments: cp}
}

// NewRoot mints the URI for a system's root actor: local scheme, single
// segment equal to name.
func NewRoot(name string) URI {
	return New(Local, name)
}

// NewChild appends sub as a new trailing segment, preserving scheme.
func (u URI) NewChild(sub string) URI {
	segments := make([]string, len(u.segments)+1)
	copy(segments, u.segments)
	segments[len(u.segments)] = sub
	return URI{scheme: u.scheme, segments: segments}
}

// Scheme returns the URI's scheme tag.
func (u URI) Scheme() Scheme {
	return u.scheme
}

// Segments returns a copy of the URI's path segments.
func (u URI) Segments() []string {
	cp := make([]string, len(u.segments))
	copy(cp, u.segments)
	return cp
}

// Name returns the last path segment (the actor's own name within its
// parent, or its root name).
func (u URI) Name() string {
	return u.segments[len(u.segments)-1]
}

// IsDirectParentOf reports whether u is the direct parent of other: same
// scheme, other's path is u's path plus exactly one more segment, and that
// prefix matches.
func (u URI) IsDirectParentOf(other URI) bool {
	if u.scheme != other.scheme {
		return false
	}
	if len(other.segments) != len(u.segments)+1 {
		return false
	}
	for i, seg := range u.segments {
		if seg != other.segments[i] {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same scheme and same segments in
// order.
func (u URI) Equal(other URI) bool {
	return u.Key() == other.Key()
}

// Key returns a string uniquely identifying this URI, suitable for use as a
// map key (Go slices aren't comparable, so URI itself can't be a map key
// directly).
func (u URI) Key() string {
	return u.String()
}

// String returns the printable "<scheme>://seg1/seg2/..." form.
func (u URI) String() string {
	return fmt.Sprintf("%s://%s", u.scheme, strings.Join(u.segments, "/"))
}

// Parse inverts String: parsing the printable form of any URI yields an
// equal URI (spec property P7).
func Parse(s string) (URI, error) {
	schemeStr, rest, ok := strings.Cut(s, "://")
	if !ok {
		return URI{}, ErrInvalidURI
	}

	var scheme Scheme
	switch schemeStr {
	case "local":
		scheme = Local
	case "remote":
		scheme = Remote
	default:
		return URI{}, ErrInvalidURI
	}

	if rest == "" {
		return URI{}, ErrInvalidURI
	}

	segments := strings.Split(rest, "/")
	for _, seg := range segments {
		if seg == "" {
			return URI{}, ErrInvalidURI
		}
	}

	return URI{scheme: scheme, segments: segments}, nil
}
