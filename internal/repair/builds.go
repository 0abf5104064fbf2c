package repair

import "profilefix/internal/profile"

// Canonical build preset keys and the lowercase aliases some server
// versions write instead.
var buildAliases = [][2]string{
	{"Id", "id"},
	{"Name", "name"},
	{"Root", "root"},
}

func fixBuildDedup(p *Pass) {
	builds, ok := p.Profile.UserBuilds()
	if !ok {
		return
	}
	for _, category := range sortedKeys(builds) {
		presets, ok := profile.AsArray(builds[category])
		if !ok {
			continue
		}
		if n := canonicalizeBuilds(presets); n > 0 {
			p.Log.Fixed("Normalized field names of %d builds in %s", n, category)
		}
		builds[category] = dedupBuilds(p, category, presets)
	}
}

func canonicalizeBuilds(presets profile.Array) int {
	changed := 0
	for _, raw := range presets {
		preset, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		touched := false
		for _, pair := range buildAliases {
			upper, lower := pair[0], pair[1]
			v, present := preset[lower]
			if !present {
				continue
			}
			if !profile.Has(preset, upper) {
				preset[upper] = v
			}
			delete(preset, lower)
			touched = true
		}
		if touched {
			changed++
		}
	}
	return changed
}

// dedupBuilds keeps the last preset for every id.
func dedupBuilds(p *Pass, category string, presets profile.Array) profile.Array {
	seen := map[string]bool{}
	drop := make([]bool, len(presets))
	dropped := 0
	for i := len(presets) - 1; i >= 0; i-- {
		preset, ok := profile.AsObject(presets[i])
		if !ok {
			continue
		}
		id, _ := profile.String(preset, "Id")
		if id == "" {
			continue
		}
		if !seen[id] {
			seen[id] = true
			continue
		}
		drop[i] = true
		dropped++
	}
	if dropped == 0 {
		return presets
	}

	out := make(profile.Array, 0, len(presets)-dropped)
	for i, raw := range presets {
		if !drop[i] {
			out = append(out, raw)
			continue
		}
		preset, _ := profile.AsObject(raw)
		name, _ := profile.String(preset, "Name")
		id, _ := profile.String(preset, "Id")
		p.Log.Fixed("Removed duplicate build %q (%s) from %s at position %d", name, id, category, i)
	}
	return out
}
