// Package message defines the opaque payload contract the runtime treats
// actors' messages through. Serialization is explicitly an external
// collaborator (spec §1): this package only requires a type-erased view for
// downcasting, an encoded-length hook for logging, and an optional
// encode/decode round trip used by the runtime's debug mode.
package message

import (
	"bytes"
	"encoding/gob"

	"google.golang.org/protobuf/proto"
)

func init() {
	// gob requires every concrete type ever stored in an interface{} value
	// to be registered before it can cross an Encode/Decode boundary.
	// These cover the primitive payloads actors commonly exchange; a
	// payload type outside this set that doesn't implement proto.Message
	// needs its own gob.Register call by the caller.
	for _, v := range []any{
		"", 0, int32(0), int64(0), uint32(0), uint64(0), float32(0), float64(0), false, []byte(nil),
	} {
		gob.Register(v)
	}
}

// Payload is the opaque, type-erased message body an actor receives.
// Concretely it's just `any`: actors downcast it with a type switch, the
// idiomatic Go substitute for the tagged-trait-object/downcast-by-type-id
// strategy the spec calls out for statically typed languages (spec §9).
type Payload = any

// EncodedLen returns the best-effort encoded size of p, used only for
// logging unhandled messages (spec §4.3). Proto messages report their real
// wire size; everything else falls back to a gob-encoded byte count.
func EncodedLen(p Payload) int {
	if pm, ok := p.(proto.Message); ok {
		return proto.Size(pm)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&p); err != nil {
		return 0
	}
	return buf.Len()
}

// RoundTrip encodes p and decodes it back into a fresh value, returning the
// copy. This backs the runtime's optional debug-mode serialization round
// trip (spec §4.2), which exists to catch accidental shared state leaking
// across the actor boundary. Proto messages round-trip through
// proto.Marshal/Unmarshal (a fresh zero value of the same concrete type);
// anything else round-trips through encoding/gob, the stdlib's generic
// "copy an arbitrary Go value" mechanism — there is no third-party
// reflection-based deep-copy library in the example corpus, and gob is the
// idiomatic stdlib answer when no concrete schema is registered.
func RoundTrip(p Payload) (Payload, error) {
	if pm, ok := p.(proto.Message); ok {
		data, err := proto.Marshal(pm)
		if err != nil {
			return nil, err
		}
		out := pm.ProtoReflect().New().Interface()
		if err := proto.Unmarshal(data, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&p); err != nil {
		return nil, err
	}

	var out Payload
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
