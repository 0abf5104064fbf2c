package repair

import "profilefix/internal/profile"

func fixDuplicateItems(p *Pass) {
	items, ok := p.Profile.Items()
	if !ok {
		return
	}
	seen := map[string]bool{}
	var dups []int
	for i, raw := range items {
		it, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		id := profile.ItemID(it)
		if id == "" {
			continue
		}
		if seen[id] {
			dups = append(dups, i)
			continue
		}
		seen[id] = true
	}
	if len(dups) == 0 {
		return
	}
	if !p.Opts.RemoveDuplicates {
		p.Log.Failed("Found %d duplicate inventory items; enable duplicate removal to fix them", len(dups))
		return
	}

	out := make(profile.Array, 0, len(items)-len(dups))
	next := 0
	for i, raw := range items {
		if next < len(dups) && dups[next] == i {
			next++
			continue
		}
		out = append(out, raw)
	}
	p.Profile.SetItems(out)
	p.Log.Fixed("Removed %d duplicate inventory items", len(dups))
}

// fixCustomizationStash creates the hideout containers newer servers expect
// when a profile predates them. The customization stash id gates the rule.
func fixCustomizationStash(p *Pass) {
	inv, ok := p.Profile.Inventory()
	if !ok || len(p.Tuning.CustomizationContainers) == 0 {
		return
	}
	gate := p.Tuning.CustomizationContainers[0].Field
	if id, _ := profile.String(inv, gate); id != "" {
		return
	}
	items, ok := p.Profile.Items()
	if !ok {
		return
	}
	present := profile.IndexItems(items)
	for _, c := range p.Tuning.CustomizationContainers {
		id, _ := profile.String(inv, c.Field)
		if id == "" {
			id = p.IDs.Next()
			inv[c.Field] = id
		}
		if _, exists := present[id]; exists {
			continue
		}
		items = append(items, profile.Object{"_id": id, "_tpl": c.Template})
		present[id] = nil
		p.Log.Fixed("Created missing %s container %s", c.Field, id)
	}
	p.Profile.SetItems(items)
}

// fixInventoryOrphans re-roots inventory items whose parent no longer exists
// under the player's stash.
func fixInventoryOrphans(p *Pass) {
	inv, ok := p.Profile.Inventory()
	if !ok {
		return
	}
	stash, _ := profile.String(inv, "stash")
	if stash == "" {
		return
	}
	items, ok := p.Profile.Items()
	if !ok {
		return
	}
	for _, it := range Orphans(stash, items) {
		p.Log.Fixed("Moved orphaned item %s (missing parent %s) to the stash", profile.ItemID(it), profile.ParentID(it))
	}
	ReparentOrphans(stash, items)
}
