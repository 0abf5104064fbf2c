package profile

import "strings"

// Profile wraps the decoded save document. Fixers mutate Root in place.
type Profile struct {
	Root Object
}

func New(root Object) *Profile { return &Profile{Root: root} }

// Version returns the declared format version, or "" when none is recorded.
func (p *Profile) Version() string {
	for _, key := range []string{"spt", "aki"} {
		if meta, ok := Child(p.Root, key); ok {
			if v, ok := String(meta, "version"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

func (p *Profile) Info() (Object, bool) { return Child(p.Root, "info") }

func (p *Profile) Edition() string {
	info, _ := p.Info()
	s, _ := String(info, "edition")
	return s
}

// PMC returns the player character record.
func (p *Profile) PMC() (Object, bool) { return Walk(p.Root, "characters", "pmc") }

func (p *Profile) Inventory() (Object, bool) {
	pmc, ok := p.PMC()
	if !ok {
		return nil, false
	}
	return Child(pmc, "Inventory")
}

func (p *Profile) Items() (Array, bool) {
	inv, ok := p.Inventory()
	if !ok {
		return nil, false
	}
	return ArrayAt(inv, "items")
}

// SetItems replaces the inventory item list. It is a no-op without an
// inventory object.
func (p *Profile) SetItems(items Array) {
	if inv, ok := p.Inventory(); ok {
		inv["items"] = items
	}
}

func (p *Profile) Hideout() (Object, bool) {
	pmc, ok := p.PMC()
	if !ok {
		return nil, false
	}
	return Child(pmc, "Hideout")
}

func (p *Profile) Ragfair() (Object, bool) {
	pmc, ok := p.PMC()
	if !ok {
		return nil, false
	}
	return Child(pmc, "RagfairInfo")
}

func (p *Profile) UserBuilds() (Object, bool) { return Child(p.Root, "userbuilds") }

func (p *Profile) Dialogues() (Object, bool) { return Child(p.Root, "dialogues") }

// Item accessors over the flat inventory list.

func ItemID(it Object) string {
	s, _ := String(it, "_id")
	return s
}

func ItemTpl(it Object) string {
	s, _ := String(it, "_tpl")
	return s
}

func ParentID(it Object) string {
	s, _ := String(it, "parentId")
	return s
}

func SlotID(it Object) string {
	s, _ := String(it, "slotId")
	return s
}

// IndexItems maps item ids to items. Later duplicates do not replace the
// first occurrence.
func IndexItems(items Array) map[string]Object {
	out := make(map[string]Object, len(items))
	for _, raw := range items {
		it, ok := AsObject(raw)
		if !ok {
			continue
		}
		id := ItemID(it)
		if id == "" {
			continue
		}
		if _, dup := out[id]; !dup {
			out[id] = it
		}
	}
	return out
}
