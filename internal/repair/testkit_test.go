package repair

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"profilefix/internal/config"
	"profilefix/internal/profile"
	"profilefix/internal/profile/ids"
)

func mustDoc(t *testing.T, raw string) *profile.Profile {
	t.Helper()
	doc, err := profile.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return doc
}

func testIDs() *ids.Generator {
	at := time.Unix(0x66000000, 0)
	return ids.NewGeneratorWith(func() time.Time { return at }, rand.New(rand.NewSource(7)))
}

// runFixer applies one registered fixer with default tuning.
func runFixer(t *testing.T, name string, doc *profile.Profile, opts Options) *ChangeLog {
	t.Helper()
	f, ok := Lookup(name)
	if !ok {
		t.Fatalf("fixer %q not registered", name)
	}
	log := &ChangeLog{}
	f.Fix(&Pass{Profile: doc, Log: log, Tuning: config.Default(), Opts: opts, IDs: testIDs()})
	return log
}

// runTwice checks the second application is a no-op.
func runTwice(t *testing.T, name string, doc *profile.Profile, opts Options) *ChangeLog {
	t.Helper()
	first := runFixer(t, name, doc, opts)
	before, err := profile.Encode(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second := runFixer(t, name, doc, opts)
	after, _ := profile.Encode(doc)
	if second.Len() != 0 {
		t.Fatalf("%s not idempotent, second run logged %+v", name, second.Entries())
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("%s mutated the document on the second run", name)
	}
	return first
}

func items(t *testing.T, doc *profile.Profile) []profile.Object {
	t.Helper()
	arr, ok := doc.Items()
	if !ok {
		t.Fatalf("no inventory items")
	}
	out := make([]profile.Object, 0, len(arr))
	for _, raw := range arr {
		it, _ := profile.AsObject(raw)
		out = append(out, it)
	}
	return out
}

func itemByID(t *testing.T, doc *profile.Profile, id string) profile.Object {
	t.Helper()
	for _, it := range items(t, doc) {
		if profile.ItemID(it) == id {
			return it
		}
	}
	t.Fatalf("item %q not found", id)
	return nil
}

func wrapPMC(pmc string) string {
	return `{"info":{"id":"p1"},"characters":{"pmc":{"Info":{"Nickname":"tester"},` + pmc + `}}}`
}
