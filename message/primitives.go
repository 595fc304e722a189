package message

import "google.golang.org/protobuf/types/known/wrapperspb"

// FromString, FromInt32, FromInt64, FromBool and FromFloat64 wrap a Go
// primitive in a protobuf well-known wrapper type, giving it a concrete
// proto.Message identity so it can exercise the proto.Message branch of
// EncodedLen/RoundTrip. This mirrors original_source's
// message/common_types.rs, which derived a prost Message for each primitive
// via a U32Wrapper/StringWrapper/... family; wrapperspb is the equivalent
// pre-built Go type family and needs no codegen step.
func FromString(v string) Payload { return wrapperspb.String(v) }

func FromInt32(v int32) Payload { return wrapperspb.Int32(v) }

func FromInt64(v int64) Payload { return wrapperspb.Int64(v) }

func FromBool(v bool) Payload { return wrapperspb.Bool(v) }

func FromFloat64(v float64) Payload { return wrapperspb.Double(v) }

// AsString unwraps a payload produced by FromString, reporting whether it
// actually was one.
func AsString(p Payload) (string, bool) {
	w, ok := p.(*wrapperspb.StringValue)
	if !ok {
		return "", false
	}
	return w.GetValue(), true
}

// AsInt32 unwraps a payload produced by FromInt32.
func AsInt32(p Payload) (int32, bool) {
	w, ok := p.(*wrapperspb.Int32Value)
	if !ok {
		return 0, false
	}
	return w.GetValue(), true
}

// AsInt64 unwraps a payload produced by FromInt64.
func AsInt64(p Payload) (int64, bool) {
	w, ok := p.(*wrapperspb.Int64Value)
	if !ok {
		return 0, false
	}
	return w.GetValue(), true
}
