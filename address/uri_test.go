package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"pgregory.net/rapid"

	"github.com/gopheractors/actorhive/address"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func segmentGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z0-9_]+`)
}

func schemeGen() *rapid.Generator[address.Scheme] {
	return rapid.SampledFrom([]address.Scheme{address.Local, address.Remote})
}

func uriGen() *rapid.Generator[address.URI] {
	return rapid.Custom(func(t *rapid.T) address.URI {
		scheme := schemeGen().Draw(t, "scheme")
		segs := rapid.SliceOfN(segmentGen(), 1, 6).Draw(t, "segments")
		return address.New(scheme, segs...)
	})
}

// P7: parsing the printable form of any URI yields an equal URI.
func TestURIRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := uriGen().Draw(t, "uri")

		parsed, err := address.Parse(u.String())
		require.NoError(t, err)
		assert.True(t, u.Equal(parsed), "round-trip mismatch: %s vs %s", u, parsed)
	})
}

// P7: IsDirectParentOf is anti-reflexive and antisymmetric.
func TestIsDirectParentOfAntiReflexiveAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := uriGen().Draw(t, "uri")
		assert.False(t, u.IsDirectParentOf(u), "uri must not be its own direct parent")
	})

	rapid.Check(t, func(t *rapid.T) {
		parent := uriGen().Draw(t, "parent")
		child := parent.NewChild(segmentGen().Draw(t, "child-seg"))

		assert.True(t, parent.IsDirectParentOf(child))
		assert.False(t, child.IsDirectParentOf(parent), "relation must not hold in both directions")
	})
}

func TestNewChildAppendsSegment(t *testing.T) {
	root := address.NewRoot("geoip_updater")
	child := root.NewChild("download_manager")

	assert.Equal(t, "local://geoip_updater/download_manager", child.String())
	assert.True(t, root.IsDirectParentOf(child))
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{
		"",
		"local://",
		"ftp://a/b",
		"local://a//b",
		"noscheme",
	} {
		_, err := address.Parse(s)
		assert.ErrorIs(t, err, address.ErrInvalidURI, "input %q should be rejected", s)
	}
}

func TestNewPanicsOnInvalidSegments(t *testing.T) {
	assert.Panics(t, func() { address.New(address.Local) })
	assert.Panics(t, func() { address.New(address.Local, "") })
	assert.Panics(t, func() { address.New(address.Local, "a/b") })
}
