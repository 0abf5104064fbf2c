package ids

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Length of a generated item id.
const Length = 24

// Generator mints item ids: unix seconds in hex followed by random hex.
// Collisions are not checked.
type Generator struct {
	now  func() time.Time
	rand io.Reader
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now, rand: rand.Reader}
}

// NewGeneratorWith returns a generator with a fixed clock and entropy source.
func NewGeneratorWith(now func() time.Time, r io.Reader) *Generator {
	return &Generator{now: now, rand: r}
}

func (g *Generator) Next() string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(g.now().Unix(), 16))
	for b.Len() < Length {
		u, err := uuid.NewRandomFromReader(g.rand)
		if err != nil {
			// Exhausted test readers fall back to the system source.
			u = uuid.New()
		}
		b.WriteString(randomHex(u))
	}
	return b.String()[:Length]
}

// randomHex drops the version and variant nibbles, which are fixed in a
// version 4 uuid.
func randomHex(u uuid.UUID) string {
	h := hex.EncodeToString(u[:])
	return h[:12] + h[13:16] + h[17:]
}

// Valid reports whether id has the generated form.
func Valid(id string) bool {
	if len(id) != Length {
		return false
	}
	for _, c := range id {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
