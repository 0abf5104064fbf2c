package repair

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"profilefix/internal/config"
	"profilefix/internal/profile"
	"profilefix/internal/profile/ids"
)

const noIssuesMessage = "No issues found"

// Fixers that run for every profile, in order, before the version rules.
var preFixers = []string{
	FixAmmoReindex,
	FixBuildDedup,
	FixBitcoinProduction,
	FixProductionProgress,
	FixFleaRating,
	FixStashTemplate,
	FixWipeFlag,
	FixSkills,
	FixCurrencyMetadata,
}

// Fixers that run after duplicate removal.
var postFixers = []string{
	FixInventoryOrphans,
	FixRepeatableQuests,
	FixQuestDrops,
	FixTraderUnlock,
}

type versionRule struct {
	prefix string
	fixers []Fixer
}

// Pipeline runs the ordered fixer pass over one profile. It holds no state
// between runs.
type Pipeline struct {
	tuning config.Tuning
	pre    []Fixer
	dupes  Fixer
	post   []Fixer
	rules  []versionRule
	ids    *ids.Generator
	logger *zap.Logger
}

type Option func(*Pipeline)

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithIDs sets the generator used for synthesized container ids.
func WithIDs(g *ids.Generator) Option {
	return func(p *Pipeline) {
		if g != nil {
			p.ids = g
		}
	}
}

// New builds a pipeline from tuning. Version rules naming unknown fixers are
// rejected.
func New(t config.Tuning, opts ...Option) (*Pipeline, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	pl := &Pipeline{
		tuning: t,
		pre:    mustLookup(preFixers...),
		dupes:  mustLookup(FixDuplicateItems)[0],
		post:   mustLookup(postFixers...),
		ids:    ids.NewGenerator(),
		logger: zap.NewNop(),
	}
	for _, r := range t.VersionRules {
		vr := versionRule{prefix: r.Prefix}
		for _, name := range r.Fixers {
			f, ok := Lookup(name)
			if !ok {
				return nil, fmt.Errorf("version rule %q: unknown fixer %q", r.Prefix, name)
			}
			vr.fixers = append(vr.fixers, f)
		}
		pl.rules = append(pl.rules, vr)
	}
	for _, o := range opts {
		o(pl)
	}
	return pl, nil
}

// VersionFixers returns the rule set for a format version. The longest
// matching prefix wins, so "3.10" is not handled by a "3.1" rule.
func (pl *Pipeline) VersionFixers(version string) (prefix string, fixers []Fixer) {
	for _, r := range pl.rules {
		if strings.HasPrefix(version, r.prefix) && len(r.prefix) > len(prefix) {
			prefix, fixers = r.prefix, r.fixers
		}
	}
	return prefix, fixers
}

// Result is the outcome of one pass.
type Result struct {
	Log      []Entry
	Modified bool
	// Skipped is set when the input was not a recognisable profile.
	Skipped bool
}

// Run repairs doc in place.
func (pl *Pipeline) Run(doc *profile.Profile, opts Options) Result {
	log := &ChangeLog{}
	if doc == nil {
		log.Info("Nothing to do: no profile loaded")
		return Result{Log: log.Entries(), Skipped: true}
	}
	if _, ok := doc.PMC(); !ok {
		log.Info("Nothing to do: profile has no player character")
		return Result{Log: log.Entries(), Skipped: true}
	}

	pass := &Pass{
		Profile: doc,
		Log:     log,
		Tuning:  pl.tuning,
		Opts:    opts,
		IDs:     pl.ids,
	}
	pl.apply(pass, pl.pre)

	version := doc.Version()
	if prefix, fixers := pl.VersionFixers(version); len(fixers) > 0 {
		pl.logger.Debug("version rules", zap.String("version", version), zap.String("prefix", prefix))
		pl.apply(pass, fixers)
	}

	pl.apply(pass, []Fixer{pl.dupes})
	pl.apply(pass, pl.post)

	if log.Len() == 0 {
		log.Info(noIssuesMessage)
	}
	return Result{Log: log.Entries(), Modified: log.Modified()}
}

func (pl *Pipeline) apply(pass *Pass, fixers []Fixer) {
	for _, f := range fixers {
		before := pass.Log.Len()
		f.Fix(pass)
		if n := pass.Log.Len() - before; n > 0 {
			pl.logger.Debug("fixer reported", zap.String("fixer", f.Name), zap.Int("entries", n))
		}
	}
}

// Outcome carries the serialized document next to the pass result.
type Outcome struct {
	Result
	Output []byte
}

// Repair decodes raw, runs one pass and re-encodes. Input that is not a
// profile is handed back unchanged with a single informational entry.
func (pl *Pipeline) Repair(raw []byte, opts Options) (Outcome, error) {
	doc, err := profile.Decode(raw)
	if err != nil {
		if !errors.Is(err, profile.ErrNotProfile) {
			return Outcome{}, err
		}
		log := &ChangeLog{}
		log.Info("Nothing to do: %v", err)
		return Outcome{Result: Result{Log: log.Entries(), Skipped: true}, Output: raw}, nil
	}
	res := pl.Run(doc, opts)
	out, err := profile.Encode(doc)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Result: res, Output: out}, nil
}
