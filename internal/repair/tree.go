package repair

import "profilefix/internal/profile"

const hideoutSlot = "hideout"

// Orphans returns the items ReparentOrphans would move: their parent is
// missing from items, they are not already under rootID and not in the
// hideout slot. Items without a parent id are roots.
func Orphans(rootID string, items profile.Array) []profile.Object {
	byID := profile.IndexItems(items)
	var out []profile.Object
	for _, raw := range items {
		it, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		parent := profile.ParentID(it)
		if parent == "" {
			continue
		}
		if _, found := byID[parent]; found {
			continue
		}
		if parent == rootID || profile.SlotID(it) == hideoutSlot {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ReparentOrphans moves every orphan under rootID in the hideout slot and
// drops its location. Nothing is removed.
func ReparentOrphans(rootID string, items profile.Array) profile.Array {
	for _, it := range Orphans(rootID, items) {
		it["parentId"] = rootID
		it["slotId"] = hideoutSlot
		delete(it, "location")
	}
	return items
}
