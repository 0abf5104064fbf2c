package repair

import (
	"strconv"

	"profilefix/internal/profile"
)

// fixRepeatableQuests resets the timer of repeatable quest pools whose
// generation stopped half way: an end time without change requirements.
func fixRepeatableQuests(p *Pass) {
	pmc, ok := p.Profile.PMC()
	if !ok {
		return
	}
	pools, ok := profile.ArrayAt(pmc, "RepeatableQuests")
	if !ok {
		return
	}
	for i, raw := range pools {
		pool, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		end, ok := profile.Number(pool["endTime"])
		if !ok || end == 0 {
			continue
		}
		if req, ok := profile.Child(pool, "changeRequirement"); ok && len(req) > 0 {
			continue
		}
		pool["endTime"] = 0
		name, _ := profile.String(pool, "name")
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}
		p.Log.Fixed("Reset repeatable quests %s so they are generated again", name)
	}
}

// fixQuestDrops removes dropped-item records of quests the player no longer
// has.
func fixQuestDrops(p *Pass) {
	pmc, ok := p.Profile.PMC()
	if !ok {
		return
	}
	eft, ok := profile.Walk(pmc, "Stats", "Eft")
	if !ok {
		return
	}
	records, ok := profile.ArrayAt(eft, "DroppedItems")
	if !ok || len(records) == 0 {
		return
	}

	known := map[string]bool{}
	quests, _ := profile.ArrayAt(pmc, "Quests")
	for _, raw := range quests {
		q, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		if qid, _ := profile.String(q, "qid"); qid != "" {
			known[qid] = true
		}
	}

	stale := map[string]bool{}
	for _, raw := range records {
		rec, ok := profile.AsObject(raw)
		if !ok {
			continue
		}
		if qid, _ := profile.String(rec, "QuestId"); qid != "" && !known[qid] {
			stale[qid] = true
		}
	}
	if len(stale) == 0 {
		return
	}

	kept := make(profile.Array, 0, len(records))
	for _, raw := range records {
		rec, ok := profile.AsObject(raw)
		if ok {
			if qid, _ := profile.String(rec, "QuestId"); stale[qid] {
				continue
			}
		}
		kept = append(kept, raw)
	}
	eft["DroppedItems"] = kept
	p.Log.Fixed("Removed %d dropped item records of %d unknown quests", len(records)-len(kept), len(stale))
}
