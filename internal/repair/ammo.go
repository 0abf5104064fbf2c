package repair

import (
	"sort"

	"profilefix/internal/profile"
)

const cartridgesSlot = "cartridges"

// fixAmmoReindex makes cartridge locations inside each magazine a dense
// 0-based sequence ordered by their previous location. A stack with no
// location that ranks first stays without one; ammo boxes store their
// contents that way.
func fixAmmoReindex(p *Pass) {
	items, ok := p.Profile.Items()
	if !ok {
		return
	}

	groups := map[string][]profile.Object{}
	var parents []string
	for _, raw := range items {
		it, ok := profile.AsObject(raw)
		if !ok || profile.SlotID(it) != cartridgesSlot {
			continue
		}
		parent := profile.ParentID(it)
		if _, seen := groups[parent]; !seen {
			parents = append(parents, parent)
		}
		groups[parent] = append(groups[parent], it)
	}

	for _, parent := range parents {
		if n := reindexCartridges(groups[parent]); n > 0 {
			p.Log.Fixed("Reindexed %d cartridge stacks in %s", n, parent)
		}
	}
}

// reindexCartridges assigns ranks and returns how many items changed.
func reindexCartridges(group []profile.Object) int {
	sort.SliceStable(group, func(i, j int) bool {
		return cartridgeLocation(group[i]) < cartridgeLocation(group[j])
	})
	changed := 0
	for rank, it := range group {
		hadLocation := it["location"] != nil
		if !hadLocation && rank == 0 {
			continue
		}
		if cur, ok := profile.Int(it["location"]); ok && hadLocation && cur == rank {
			continue
		}
		it["location"] = rank
		changed++
	}
	return changed
}

func cartridgeLocation(it profile.Object) int {
	n, ok := profile.Int(it["location"])
	if !ok {
		return 0
	}
	return n
}
