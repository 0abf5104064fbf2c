package ids

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestGeneratorPrefixIsUnixSecondsHex(t *testing.T) {
	at := time.Unix(0x65a1b2c3, 0)
	g := NewGeneratorWith(func() time.Time { return at }, bytes.NewReader(bytes.Repeat([]byte{0xab}, 64)))

	id := g.Next()
	if !Valid(id) {
		t.Fatalf("Next() = %q, want 24 lowercase hex chars", id)
	}
	if !strings.HasPrefix(id, "65a1b2c3") {
		t.Fatalf("Next() = %q, want prefix 65a1b2c3", id)
	}
}

func TestGeneratorDiffersAcrossCalls(t *testing.T) {
	g := NewGenerator()
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		id := g.Next()
		if !Valid(id) {
			t.Fatalf("invalid id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidRejects(t *testing.T) {
	tests := []string{
		"",
		"65a1b2c3",
		"65A1B2C3abababababababab",
		"65a1b2c3abababababababzz",
		"65a1b2c3abababababababab0",
	}
	for _, tc := range tests {
		if Valid(tc) {
			t.Fatalf("expected %q to be invalid", tc)
		}
	}
}

func TestGeneratorRandomPartVaries(t *testing.T) {
	at := time.Unix(0x65a1b2c3, 0)
	g := NewGeneratorWith(func() time.Time { return at }, rand.New(rand.NewSource(1)))

	seen := make([]map[byte]bool, Length)
	for i := range seen {
		seen[i] = map[byte]bool{}
	}
	for i := 0; i < 256; i++ {
		id := g.Next()
		for j := 0; j < Length; j++ {
			seen[j][id[j]] = true
		}
	}
	for j := 8; j < Length; j++ {
		if len(seen[j]) < 2 {
			t.Fatalf("position %d is constant across ids", j)
		}
	}
}
