package repair

import (
	"profilefix/internal/config"
	"profilefix/internal/profile"
	"profilefix/internal/profile/ids"
)

// Options are the caller preferences read at every pass.
type Options struct {
	RemoveDuplicates bool
}

// Pass is the state one fixer sees. Fixers mutate Profile in place and
// append to Log; a fixer that cannot find its substructure does nothing.
type Pass struct {
	Profile *profile.Profile
	Log     *ChangeLog
	Tuning  config.Tuning
	Opts    Options
	IDs     *ids.Generator
}

type FixFunc func(p *Pass)

// Fixer names a single detection and correction rule.
type Fixer struct {
	Name string
	Fix  FixFunc
}

// Fixer names, as referenced by version rules.
const (
	FixAmmoReindex        = "ammo-reindex"
	FixBuildDedup         = "build-dedup"
	FixBitcoinProduction  = "bitcoin-production"
	FixProductionProgress = "production-progress"
	FixFleaRating         = "flea-rating"
	FixStashTemplate      = "stash-template"
	FixWipeFlag           = "wipe-flag"
	FixSkills             = "skills"
	FixCurrencyMetadata   = "currency-metadata"
	FixDuplicateItems     = "duplicate-items"
	FixInventoryOrphans   = "inventory-orphans"
	FixRepeatableQuests   = "repeatable-quests"
	FixQuestDrops         = "quest-drops"
	FixTraderUnlock       = "trader-unlock"
	FixRagfairOffers      = "ragfair-offers"
	FixRagfairOfferRating = "ragfair-offer-rating"
	FixHideoutAreaLevels  = "hideout-area-levels"
	FixMailAttachments    = "mail-attachments"
	FixCustomizationStash = "customization-stash"
)

var registry = map[string]FixFunc{
	FixAmmoReindex:        fixAmmoReindex,
	FixBuildDedup:         fixBuildDedup,
	FixBitcoinProduction:  fixBitcoinProduction,
	FixProductionProgress: fixProductionProgress,
	FixFleaRating:         fixFleaRating,
	FixStashTemplate:      fixStashTemplate,
	FixWipeFlag:           fixWipeFlag,
	FixSkills:             fixSkills,
	FixCurrencyMetadata:   fixCurrencyMetadata,
	FixDuplicateItems:     fixDuplicateItems,
	FixInventoryOrphans:   fixInventoryOrphans,
	FixRepeatableQuests:   fixRepeatableQuests,
	FixQuestDrops:         fixQuestDrops,
	FixTraderUnlock:       fixTraderUnlock,
	FixRagfairOffers:      fixRagfairOffers,
	FixRagfairOfferRating: fixRagfairOfferRating,
	FixHideoutAreaLevels:  fixHideoutAreaLevels,
	FixMailAttachments:    fixMailAttachments,
	FixCustomizationStash: fixCustomizationStash,
}

// Lookup returns the registered fixer for name.
func Lookup(name string) (Fixer, bool) {
	fn, ok := registry[name]
	if !ok {
		return Fixer{}, false
	}
	return Fixer{Name: name, Fix: fn}, true
}

func mustLookup(names ...string) []Fixer {
	out := make([]Fixer, 0, len(names))
	for _, n := range names {
		f, ok := Lookup(n)
		if !ok {
			panic("repair: unknown fixer " + n)
		}
		out = append(out, f)
	}
	return out
}
