package repair

import "profilefix/internal/profile"

// fixRagfairOffers drops offers the client cannot render: a null quantity
// or an item whose stack data has a null count.
func fixRagfairOffers(p *Pass) {
	rf, ok := p.Profile.Ragfair()
	if !ok {
		return
	}
	offers, ok := profile.ArrayAt(rf, "offers")
	if !ok {
		return
	}
	kept := make(profile.Array, 0, len(offers))
	for _, raw := range offers {
		offer, ok := profile.AsObject(raw)
		if ok && invalidOffer(offer) {
			continue
		}
		kept = append(kept, raw)
	}
	removed := len(offers) - len(kept)
	if removed == 0 {
		return
	}
	rf["offers"] = kept
	p.Log.Fixed("Removed %d invalid flea market offers", removed)
}

func invalidOffer(offer profile.Object) bool {
	if profile.IsNull(offer, "quantity") {
		return true
	}
	items, _ := profile.ArrayAt(offer, "items")
	for _, raw := range items {
		it, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		upd, ok := profile.Child(it, "upd")
		if ok && profile.IsNull(upd, "StackObjectsCount") {
			return true
		}
	}
	return false
}
