package stream_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"yanyu/backend/internal/stream"
)

// splitRandomly cuts b into pieces at random offsets. Empty pieces are allowed so the
// consumers also see zero-length reads.
func splitRandomly(rng *rand.Rand, b []byte) [][]byte {
	var parts [][]byte
	for len(b) > 0 {
		n := rng.Intn(len(b) + 1)
		parts = append(parts, b[:n])
		b = b[n:]
	}
	return parts
}

func decodeAll(parts [][]byte) string {
	dec := stream.NewDecoder()
	var out strings.Builder
	for _, p := range parts {
		out.WriteString(dec.Decode(p))
	}
	out.WriteString(dec.Flush())
	return out.String()
}

func TestDecoder_MultiByteAcrossBoundaries(t *testing.T) {
	// "你好" is two 3-byte code points; cut inside each one.
	input := []byte("你好, wörld 🚀")

	t.Run("byte at a time", func(t *testing.T) {
		parts := make([][]byte, 0, len(input))
		for i := range input {
			parts = append(parts, input[i:i+1])
		}
		assert.Equal(t, string(input), decodeAll(parts))
	})

	t.Run("holds back incomplete code point", func(t *testing.T) {
		dec := stream.NewDecoder()
		assert.Equal(t, "", dec.Decode(input[:2]))
		assert.Equal(t, "你", dec.Decode(input[2:4]))
	})
}

func TestDecoder_ReplacesIllFormedBytes(t *testing.T) {
	dec := stream.NewDecoder()
	out := dec.Decode([]byte{'a', 0xff, 'b'})
	assert.Equal(t, "a�b", out)

	// A truncated sequence at the very end of the stream becomes U+FFFD on Flush.
	dec = stream.NewDecoder()
	assert.Equal(t, "x", dec.Decode([]byte{'x', 0xe4, 0xbd}))
	assert.Equal(t, "�", dec.Flush())
}

func TestDecoder_AnyChunkingMatchesWholeInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	inputs := [][]byte{
		[]byte("plain ascii text"),
		[]byte("混合 text with ünïcödé and emoji 😀😃"),
		{0xe2, 0x82, 'A', 0xf0, 0x9f, 0x98, 0x80, 0xc3, 0x28, 'z'},
	}

	for _, input := range inputs {
		whole := decodeAll([][]byte{input})
		for i := 0; i < 200; i++ {
			assert.Equal(t, whole, decodeAll(splitRandomly(rng, input)))
		}
	}
}
