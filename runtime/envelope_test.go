package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/gopheractors/actorhive/address"
)

func testAddr(root string) *Addr {
	return address.NewRootAddress[chan<- Envelope](root)
}

func testChildAddr(parent *Addr, name string, idx int) *Addr {
	return address.NewChildAddress[chan<- Envelope](parent, name, idx)
}

// TestEnvelopeSenderClassification checks NewEnvelope's four-way
// classification (spec §3/P3): nil -> System, equal URIs -> SentToSelf,
// sender directly-parents receiver -> Parent, otherwise -> Actor(from).
func TestEnvelopeSenderClassification(t *testing.T) {
	parent := testAddr("parent")
	child := testChildAddr(parent, "child", 0)
	stranger := testAddr("stranger")

	t.Run("nil sender is System", func(t *testing.T) {
		env := NewEnvelope(nil, child, "payload")
		assert.Equal(t, SenderSystem, env.Sender.Tag)
		assert.Nil(t, env.Sender.From)
	})

	t.Run("sender equal to receiver is SentToSelf", func(t *testing.T) {
		env := NewEnvelope(child, child, "payload")
		assert.Equal(t, SenderSelf, env.Sender.Tag)
	})

	t.Run("sender directly parents receiver is Parent", func(t *testing.T) {
		env := NewEnvelope(parent, child, "payload")
		assert.Equal(t, SenderParent, env.Sender.Tag)
	})

	t.Run("child sending to its own parent is Actor, not Parent", func(t *testing.T) {
		env := NewEnvelope(child, parent, "payload")
		assert.Equal(t, SenderActor, env.Sender.Tag)
		assert.Equal(t, child, env.Sender.From)
	})

	t.Run("unrelated sender is Actor", func(t *testing.T) {
		env := NewEnvelope(stranger, child, "payload")
		assert.Equal(t, SenderActor, env.Sender.Tag)
		assert.Equal(t, stranger, env.Sender.From)
	})
}

// P3: same four-way classification, over generated root/child names and a
// generated stranger address, none of which should ever collide by
// construction (distinct root names yield distinct URIs).
func TestEnvelopeSenderClassificationProperty(t *testing.T) {
	nameGen := rapid.StringMatching(`[a-zA-Z0-9_]+`)

	rapid.Check(t, func(t *rapid.T) {
		parentName := nameGen.Draw(t, "parent-name")
		childName := nameGen.Draw(t, "child-name")
		strangerName := nameGen.Draw(t, "stranger-name")
		if strangerName == parentName {
			t.Skip("generated stranger collides with parent name")
		}

		parent := testAddr(parentName)
		child := testChildAddr(parent, childName, rapid.IntRange(0, 1000).Draw(t, "child-idx"))
		stranger := testAddr(strangerName)

		env := NewEnvelope(nil, child, "payload")
		assert.Equal(t, SenderSystem, env.Sender.Tag)

		env = NewEnvelope(child, child, "payload")
		assert.Equal(t, SenderSelf, env.Sender.Tag)

		env = NewEnvelope(parent, child, "payload")
		assert.Equal(t, SenderParent, env.Sender.Tag)

		env = NewEnvelope(child, parent, "payload")
		assert.Equal(t, SenderActor, env.Sender.Tag)
		assert.Equal(t, child, env.Sender.From)

		env = NewEnvelope(stranger, child, "payload")
		assert.Equal(t, SenderActor, env.Sender.Tag)
		assert.Equal(t, stranger, env.Sender.From)
	})
}

func TestEnvelopeCarriesPayloadAndAckNonce(t *testing.T) {
	a := testAddr("a")
	b := testAddr("b")

	env := NewEnvelope(a, b, 42)
	assert.Equal(t, 42, env.Payload)
	assert.Nil(t, env.AckNonce)

	nonce := uint32(7)
	env.AckNonce = &nonce
	assert.Equal(t, uint32(7), *env.AckNonce)
}
