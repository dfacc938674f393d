package idempotency

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(ms int64, nonces ...string) *Generator {
	i := 0
	return &Generator{
		now: func() time.Time { return time.UnixMilli(ms) },
		nonce: func() string {
			n := nonces[i%len(nonces)]
			i++
			return n
		},
	}
}

func TestGenerate_Format(t *testing.T) {
	g := fixedGenerator(1700000000123, "abc")

	key := g.Generate("thread-7", "hello")

	require.Equal(t, "thread-7:1700000000123:abc:5", key)
}

func TestGenerate_RealNonceShape(t *testing.T) {
	key := NewGenerator().Generate("t1", "body")

	parts := strings.Split(key, ":")
	require.Len(t, parts, 4)
	assert.Equal(t, "t1", parts[0])
	_, err := strconv.ParseInt(parts[1], 10, 64)
	assert.NoError(t, err)
	assert.Len(t, parts[2], 32)
	assert.NotContains(t, parts[2], "-")
	assert.Equal(t, "4", parts[3])
}

func TestGenerate_DifferentBodiesDiffer(t *testing.T) {
	// Same instant and same nonce: only the payload fingerprint can separate them.
	g := fixedGenerator(42, "n")

	a := g.Generate("t1", "short")
	b := g.Generate("t1", "a longer body")

	require.NotEqual(t, a, b)
}

func TestGenerate_DifferentTargetsDiffer(t *testing.T) {
	g := fixedGenerator(42, "n")
	require.NotEqual(t, g.Generate("t1", "x"), g.Generate("t2", "x"))
}

func TestGenerate_RepeatedSamplingIsUnique(t *testing.T) {
	g := NewGenerator()
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		k := g.Generate("t1", "same body")
		if _, dup := seen[k]; dup {
			t.Fatalf("duplicate key after %d samples: %s", i, k)
		}
		seen[k] = struct{}{}
	}
}

// Resubmitting an unchanged body is a new attempt and gets a new key. Whether a
// user-initiated retry should instead reuse the first key (deriving it from
// target and body alone) is an open product question; this pins what the
// client does today.
func TestGenerate_ResubmitOfSameBodyMintsNewKey(t *testing.T) {
	g := NewGenerator()

	first := g.Generate("t1", "retry me")
	second := g.Generate("t1", "retry me")

	require.NotEqual(t, first, second)
}
