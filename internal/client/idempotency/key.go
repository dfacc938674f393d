// Package idempotency mints the client-side keys the backend uses to collapse
// repeated post submissions into one write.
//
// A key is "<target>:<unix millis>:<nonce>:<payload length>". The nonce is a
// random UUIDv4 without dashes. Keys are unique per attempt, not per payload:
// submitting the same body twice mints two keys. They are not meant to resist
// an adversary, only to avoid accidental dedup on the server.
package idempotency

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Generator struct {
	now   func() time.Time
	nonce func() string
}

func NewGenerator() *Generator {
	return &Generator{
		now:   time.Now,
		nonce: randomNonce,
	}
}

func randomNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Generate returns a fresh key for one submission of payload to targetID.
func (g *Generator) Generate(targetID, payload string) string {
	var b strings.Builder
	b.WriteString(targetID)
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	b.WriteByte(':')
	b.WriteString(g.nonce())
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(payload)))
	return b.String()
}
