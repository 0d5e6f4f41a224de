package sapling

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestPresetsValidate(t *testing.T) {
	for name, preset := range Presets {
		t.Run(name, func(t *testing.T) {
			cfg := preset()
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset fails its own validation: %v", err)
			}
			if cfg.Name != name {
				t.Errorf("preset registered as %q but names itself %q", name, cfg.Name)
			}
		})
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	base := func() SpeciesConfig { return Oak() }

	cases := map[string]func(*SpeciesConfig){
		"zero depth":        func(c *SpeciesConfig) { c.Depth = 0 },
		"zero trunk":        func(c *SpeciesConfig) { c.TrunkLength = Range{0, 10} },
		"decay reaches one": func(c *SpeciesConfig) { c.LengthDecay = Range{0.5, 1} },
		"nil taper":         func(c *SpeciesConfig) { c.Taper = nil },
		"zero growth window": func(c *SpeciesConfig) {
			c.Entities[0].GrowthWindow = 0
		},
		"sprite without name": func(c *SpeciesConfig) {
			c.Entities[0].Kind = KindSprite
			c.Assets = fstest.MapFS{}
		},
		"sprite without assets": func(c *SpeciesConfig) {
			c.Entities[0].Kind = KindSprite
			c.Entities[0].SpriteName = "x.png"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestValidateErrorNamesSpecies(t *testing.T) {
	cfg := Oak()
	cfg.Name = "mangrove"
	cfg.Depth = -1
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "mangrove") {
		t.Errorf("error %v does not name the species", err)
	}
}

func TestPowerTaperShrinksTowardTips(t *testing.T) {
	taper := powerTaper(20, 0.65)
	const maxDepth = 7
	prev := taper(maxDepth, maxDepth)
	assertNear(t, "trunk width", prev, 20)
	for d := maxDepth - 1; d >= 0; d-- {
		w := taper(d, maxDepth)
		if w <= 0 || w >= prev {
			t.Fatalf("taper at depth %d = %v, want within (0, %v)", d, w, prev)
		}
		prev = w
	}
}
