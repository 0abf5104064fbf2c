package repair

import (
	"sort"
	"strconv"
	"strings"

	"profilefix/internal/profile"
)

func fixBitcoinProduction(p *Pass) {
	hideout, ok := p.Profile.Hideout()
	if !ok {
		return
	}
	prod, ok := profile.Child(hideout, "Production")
	if !ok {
		return
	}
	entry, ok := profile.Child(prod, p.Tuning.Bitcoin.RecipeID)
	if !ok {
		return
	}
	want := p.Tuning.Bitcoin.ProductionTime
	if got, ok := profile.Number(entry["ProductionTime"]); ok && got == float64(want) {
		return
	}
	old := entry["ProductionTime"]
	entry["ProductionTime"] = want
	p.Log.Fixed("Bitcoin farm production time changed from %v to %d", old, want)
}

func fixProductionProgress(p *Pass) {
	hideout, ok := p.Profile.Hideout()
	if !ok {
		return
	}
	prod, ok := profile.Child(hideout, "Production")
	if !ok {
		return
	}
	for _, recipe := range sortedKeys(prod) {
		entry, ok := profile.AsObject(prod[recipe])
		if !ok || !profile.IsNull(entry, "Progress") {
			continue
		}
		entry["Progress"] = 0
		p.Log.Fixed("Production %s had no progress, set to 0", recipe)
	}
}

func fixFleaRating(p *Pass) {
	rf, ok := p.Profile.Ragfair()
	if !ok {
		return
	}
	if v, present := rf["rating"]; present && v != nil {
		return
	}
	rf["rating"] = 0.0
	p.Log.Fixed("Flea market rating was missing, set to 0")
}

func fixRagfairOfferRating(p *Pass) {
	rf, ok := p.Profile.Ragfair()
	if !ok {
		return
	}
	offers, ok := profile.ArrayAt(rf, "offers")
	if !ok {
		return
	}
	for i, raw := range offers {
		offer, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		user, ok := profile.Child(offer, "user")
		if !ok || !profile.IsNull(user, "rating") {
			continue
		}
		user["rating"] = 0
		p.Log.Fixed("Flea offer %s (#%d) had a null seller rating, set to 0", offerID(offer), i)
	}
}

func offerID(offer profile.Object) string {
	if id, ok := profile.String(offer, "_id"); ok && id != "" {
		return id
	}
	return "?"
}

func fixStashTemplate(p *Pass) {
	inv, ok := p.Profile.Inventory()
	if !ok {
		return
	}
	stashID, _ := profile.String(inv, "stash")
	if stashID == "" {
		return
	}
	items, ok := p.Profile.Items()
	if !ok {
		return
	}
	stash, ok := profile.IndexItems(items)[stashID]
	if !ok {
		return
	}

	want, ok := p.Tuning.Stash.ByEdition[p.Profile.Edition()]
	if !ok {
		level, found := stashAreaLevel(p)
		if !found {
			return
		}
		if want, ok = p.Tuning.Stash.ByLevel[level]; !ok {
			return
		}
	}
	if profile.ItemTpl(stash) == want {
		return
	}
	old := profile.ItemTpl(stash)
	stash["_tpl"] = want
	p.Log.Fixed("Stash template changed from %s to %s", old, want)
}

func stashAreaLevel(p *Pass) (int, bool) {
	hideout, ok := p.Profile.Hideout()
	if !ok {
		return 0, false
	}
	areas, ok := profile.ArrayAt(hideout, "Areas")
	if !ok {
		return 0, false
	}
	for _, raw := range areas {
		area, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		if typ, ok := profile.Int(area["type"]); !ok || typ != p.Tuning.Stash.AreaType {
			continue
		}
		return profile.Int(area["level"])
	}
	return 0, false
}

func fixWipeFlag(p *Pass) {
	info, ok := p.Profile.Info()
	if !ok {
		return
	}
	if wipe, _ := profile.Bool(info, "wipe"); !wipe {
		return
	}
	info["wipe"] = false
	p.Log.Fixed("Profile was flagged for wipe, flag cleared")
}

// fixSkills only reports. There is no safe value to restore.
func fixSkills(p *Pass) {
	pmc, ok := p.Profile.PMC()
	if !ok {
		return
	}
	skills, ok := profile.Child(pmc, "Skills")
	if !ok {
		return
	}
	common, ok := profile.ArrayAt(skills, "Common")
	if !ok {
		return
	}
	for _, raw := range common {
		skill, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		name, _ := profile.String(skill, "Id")
		for _, field := range []string{"PointsEarnedDuringSession", "Progress"} {
			v, present := skill[field]
			if !present || validSkillNumber(v) {
				continue
			}
			p.Log.Failed("Skill %s has an invalid %s value (%v); edit it by hand", name, field, v)
		}
	}
}

func validSkillNumber(v any) bool {
	if _, ok := profile.Number(v); ok {
		return true
	}
	if s, ok := v.(string); ok {
		_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err == nil
	}
	return false
}

func fixCurrencyMetadata(p *Pass) {
	items, ok := p.Profile.Items()
	if !ok || p.Tuning.CurrencyTemplate == "" {
		return
	}
	for _, raw := range items {
		it, ok := profile.AsObject(raw)
		if !ok || profile.ItemTpl(it) != p.Tuning.CurrencyTemplate || profile.Has(it, "upd") {
			continue
		}
		it["upd"] = profile.Object{"StackObjectsCount": 1}
		p.Log.Fixed("Currency item %s had no stack data, set stack count to 1", profile.ItemID(it))
	}
}

func fixHideoutAreaLevels(p *Pass) {
	hideout, ok := p.Profile.Hideout()
	if !ok {
		return
	}
	areas, ok := profile.ArrayAt(hideout, "Areas")
	if !ok {
		return
	}
	for _, raw := range areas {
		area, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		typ, ok := profile.Int(area["type"])
		if !ok {
			continue
		}
		limit, ok := p.Tuning.AreaMaxLevels[typ]
		if !ok {
			continue
		}
		level, ok := profile.Int(area["level"])
		if !ok || level <= limit {
			continue
		}
		area["level"] = limit
		p.Log.Fixed("Hideout area %d was at level %d, capped to %d", typ, level, limit)
	}
}

func fixTraderUnlock(p *Pass) {
	pmc, ok := p.Profile.PMC()
	if !ok {
		return
	}
	traders, ok := profile.Child(pmc, "TradersInfo")
	if !ok {
		return
	}
	for _, id := range p.Tuning.LockedTraders {
		trader, ok := profile.Child(traders, id)
		if !ok {
			continue
		}
		unlocked, present := profile.Bool(trader, "unlocked")
		if !present || unlocked {
			continue
		}
		trader["unlocked"] = true
		p.Log.Fixed("Trader %s was locked, unlocked it", id)
	}
}

func sortedKeys(m profile.Object) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
