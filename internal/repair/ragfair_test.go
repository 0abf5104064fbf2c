package repair

import (
	"strings"
	"testing"

	"profilefix/internal/profile"
)

func TestRagfairOffersDropsInvalid(t *testing.T) {
	doc := mustDoc(t, wrapPMC(`"RagfairInfo":{"rating":0.2,"offers":[
		{"_id":"ok","quantity":1,"items":[{"_id":"i1","upd":{"StackObjectsCount":3}},{"_id":"i2"}]},
		{"_id":"noqty","quantity":null,"items":[]},
		{"_id":"nullstack","quantity":2,"items":[{"_id":"i3","upd":{"StackObjectsCount":null}}]},
		{"_id":"noupd","quantity":2,"items":[{"_id":"i4","upd":{}}]}
	]}`))

	log := runTwice(t, FixRagfairOffers, doc, Options{})
	rf, _ := doc.Ragfair()
	offers, _ := profile.ArrayAt(rf, "offers")
	var kept []string
	for _, raw := range offers {
		o, _ := profile.AsObject(raw)
		kept = append(kept, offerID(o))
	}
	if strings.Join(kept, ",") != "ok,noupd" {
		t.Fatalf("kept offers = %v", kept)
	}
	entries := log.Entries()
	if len(entries) != 1 || !strings.Contains(entries[0].Message, "Removed 2") {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRagfairOffersAbsent(t *testing.T) {
	doc := mustDoc(t, wrapPMC(`"RagfairInfo":{"rating":1}`))
	if log := runFixer(t, FixRagfairOffers, doc, Options{}); log.Len() != 0 {
		t.Fatalf("entries = %+v", log.Entries())
	}
}
