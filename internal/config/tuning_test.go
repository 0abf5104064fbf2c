package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTuning(t *testing.T) {
	tu := Default()
	if err := tu.Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
	if tu.Bitcoin.ProductionTime != 145000 {
		t.Fatalf("bitcoin production time = %d", tu.Bitcoin.ProductionTime)
	}
	if got := tu.Stash.ByLevel[4]; got != "5811ce772459770e9e5f9532" {
		t.Fatalf("stash level 4 template = %q", got)
	}
	if tu.AreaMaxLevels[3] != 4 || tu.AreaMaxLevels[22] != 6 {
		t.Fatalf("unexpected area caps: %v", tu.AreaMaxLevels)
	}
	if len(tu.CustomizationContainers) != 4 || tu.CustomizationContainers[0].Field != "hideoutCustomizationStashId" {
		t.Fatalf("customization containers = %+v", tu.CustomizationContainers)
	}
	if len(tu.VersionRules) == 0 {
		t.Fatalf("no version rules")
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tuning.yaml")
	body := "bitcoin:\n  production_time: 99000\nlocked_traders: []\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tu, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.Bitcoin.ProductionTime != 99000 {
		t.Fatalf("production_time = %d", tu.Bitcoin.ProductionTime)
	}
	if tu.Bitcoin.RecipeID != Default().Bitcoin.RecipeID {
		t.Fatalf("recipe id lost: %q", tu.Bitcoin.RecipeID)
	}
	if len(tu.LockedTraders) != 0 {
		t.Fatalf("locked traders should be cleared, got %v", tu.LockedTraders)
	}
	if len(tu.VersionRules) != len(Default().VersionRules) {
		t.Fatalf("version rules should keep defaults")
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "bitcoin: [", "tuning.yaml"},
		{"dup prefix", "version_rules:\n  - prefix: \"3.9\"\n  - prefix: \"3.9\"\n", "duplicate prefix"},
		{"empty prefix", "version_rules:\n  - fixers: [wipe-flag]\n", "empty prefix"},
		{"container", "customization_containers:\n  - field: sortingTable\n", "needs field and template"},
	}
	for _, tc := range tests {
		p := filepath.Join(dir, "tuning.yaml")
		if err := os.WriteFile(p, []byte(tc.body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := Load(p)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: err = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(""); err != nil {
		t.Fatalf("empty path should return defaults: %v", err)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PROFILEFIX_REMOVE_DUPLICATES", "true")
	t.Setenv("PROFILEFIX_CONFIG", "/tmp/tuning.yaml")
	s, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if !s.RemoveDuplicates || s.TuningPath != "/tmp/tuning.yaml" || s.Verbose {
		t.Fatalf("settings = %+v", s)
	}

	t.Setenv("PROFILEFIX_VERBOSE", "maybe")
	if _, err := ParseEnv(); err == nil {
		t.Fatalf("expected parse error for bad bool")
	}
}

func TestLoadAcceptsZeroOverrides(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(p, []byte("stash:\n  area_type: 0\ncurrency_template: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tu, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tu.Stash.AreaType != 0 || tu.CurrencyTemplate != "" {
		t.Fatalf("zero overrides ignored: area_type=%d currency=%q", tu.Stash.AreaType, tu.CurrencyTemplate)
	}
	if len(tu.Stash.ByLevel) != len(Default().Stash.ByLevel) {
		t.Fatalf("stash templates should keep defaults")
	}

	if err := os.WriteFile(p, []byte("bitcoin:\n  production_time: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "production_time must be positive") {
		t.Fatalf("err = %v, want production_time rejected", err)
	}
}
