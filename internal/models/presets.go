package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VolumeKind tags how a preset lets the user pick a serving size
type VolumeKind string

const (
	VolumeFixed  VolumeKind = "fixed"
	VolumeChoice VolumeKind = "choice"
	VolumeRanged VolumeKind = "ranged"
)

// StrengthKind tags how a preset lets the user pick an ABV
type StrengthKind string

const (
	StrengthFixed  StrengthKind = "fixed"
	StrengthRanged StrengthKind = "ranged"
)

// VolumeOption is one selectable serving in a choice preset
type VolumeOption struct {
	Ml    float64 `json:"ml" yaml:"ml"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// VolumeSpec is the tagged serving-size variant of a preset
type VolumeSpec struct {
	Kind    VolumeKind     `json:"kind" yaml:"kind"`
	Ml      float64        `json:"ml,omitempty" yaml:"ml,omitempty"`
	Options []VolumeOption `json:"options,omitempty" yaml:"options,omitempty"`
	MinMl   float64        `json:"min_ml,omitempty" yaml:"min_ml,omitempty"`
	MaxMl   float64        `json:"max_ml,omitempty" yaml:"max_ml,omitempty"`
	StepMl  float64        `json:"step_ml,omitempty" yaml:"step_ml,omitempty"`
}

// StrengthSpec is the tagged ABV variant of a preset
type StrengthSpec struct {
	Kind   StrengthKind `json:"kind" yaml:"kind"`
	Abv    float64      `json:"abv,omitempty" yaml:"abv,omitempty"`
	MinAbv float64      `json:"min_abv,omitempty" yaml:"min_abv,omitempty"`
	MaxAbv float64      `json:"max_abv,omitempty" yaml:"max_abv,omitempty"`
}

// Preset is one beverage the picker offers. The presentation layer
// resolves a user's choice against the variant once; nothing downstream
// ever sniffs shapes.
type Preset struct {
	Key      string       `json:"key" yaml:"key"`
	Label    string       `json:"label" yaml:"label"`
	Volume   VolumeSpec   `json:"volume" yaml:"volume"`
	Strength StrengthSpec `json:"strength" yaml:"strength"`
}

func fixedVolume(ml float64) VolumeSpec {
	return VolumeSpec{Kind: VolumeFixed, Ml: ml}
}

func choiceOfVolumes(options ...VolumeOption) VolumeSpec {
	return VolumeSpec{Kind: VolumeChoice, Options: options}
}

func rangedVolume(min, max, step float64) VolumeSpec {
	return VolumeSpec{Kind: VolumeRanged, MinMl: min, MaxMl: max, StepMl: step}
}

func fixedStrength(abv float64) StrengthSpec {
	return StrengthSpec{Kind: StrengthFixed, Abv: abv}
}

func rangedStrength(min, max float64) StrengthSpec {
	return StrengthSpec{Kind: StrengthRanged, MinAbv: min, MaxAbv: max}
}

// DefaultCatalog returns the built-in beverage presets
func DefaultCatalog() []Preset {
	spirits := choiceOfVolumes(
		VolumeOption{Ml: 30, Label: "single (30ml)"},
		VolumeOption{Ml: 60, Label: "double (60ml)"},
		VolumeOption{Ml: 90, Label: "triple (90ml)"},
	)

	return []Preset{
		{Key: "beer", Label: "Beer",
			Volume:   choiceOfVolumes(VolumeOption{Ml: 350, Label: "can (350ml)"}, VolumeOption{Ml: 500, Label: "large (500ml)"}),
			Strength: fixedStrength(4)},
		{Key: "sake", Label: "Sake",
			Volume:   choiceOfVolumes(VolumeOption{Ml: 50, Label: "ochoko (50ml)"}, VolumeOption{Ml: 180, Label: "one go (180ml)"}),
			Strength: fixedStrength(15)},
		{Key: "wine", Label: "Wine", Volume: fixedVolume(120), Strength: fixedStrength(12)},
		{Key: "shochu", Label: "Shochu", Volume: fixedVolume(45), Strength: fixedStrength(25)},
		{Key: "whisky", Label: "Whisky", Volume: spirits, Strength: fixedStrength(40)},
		{Key: "gin", Label: "Gin", Volume: spirits, Strength: fixedStrength(40)},
		{Key: "rum", Label: "Rum", Volume: spirits, Strength: fixedStrength(40)},
		{Key: "vodka", Label: "Vodka", Volume: spirits, Strength: fixedStrength(40)},
		{Key: "tequila", Label: "Tequila", Volume: spirits, Strength: fixedStrength(40)},
		{Key: "chuhai", Label: "Chuhai",
			Volume:   choiceOfVolumes(VolumeOption{Ml: 350, Label: "can (350ml)"}, VolumeOption{Ml: 500, Label: "large (500ml)"}),
			Strength: rangedStrength(1, 9)},
		{Key: "cocktail", Label: "Cocktail", Volume: rangedVolume(50, 1000, 50), Strength: rangedStrength(1, 50)},
		{Key: "other", Label: "Other", Volume: rangedVolume(50, 1000, 50), Strength: rangedStrength(1, 60)},
	}
}

// FindPreset looks a preset up by key
func FindPreset(catalog []Preset, key string) (Preset, bool) {
	for _, p := range catalog {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Resolve validates a user's volume and strength choice against the
// preset's variants and returns the concrete serving. Zero means "use
// the preset value" where the variant fixes one.
func (p Preset) Resolve(volumeMl, abvPercent float64) (ml, abv float64, err error) {
	switch p.Volume.Kind {
	case VolumeFixed:
		if volumeMl != 0 && volumeMl != p.Volume.Ml {
			return 0, 0, fmt.Errorf("preset %s serves %gml only", p.Key, p.Volume.Ml)
		}
		ml = p.Volume.Ml
	case VolumeChoice:
		for _, opt := range p.Volume.Options {
			if opt.Ml == volumeMl {
				ml = volumeMl
				break
			}
		}
		if ml == 0 {
			return 0, 0, fmt.Errorf("preset %s does not offer %gml", p.Key, volumeMl)
		}
	case VolumeRanged:
		if volumeMl < p.Volume.MinMl || volumeMl > p.Volume.MaxMl {
			return 0, 0, fmt.Errorf("preset %s volume must be %g-%gml", p.Key, p.Volume.MinMl, p.Volume.MaxMl)
		}
		ml = volumeMl
	default:
		return 0, 0, fmt.Errorf("preset %s has unknown volume kind %q", p.Key, p.Volume.Kind)
	}

	switch p.Strength.Kind {
	case StrengthFixed:
		if abvPercent != 0 && abvPercent != p.Strength.Abv {
			return 0, 0, fmt.Errorf("preset %s is fixed at %g%% abv", p.Key, p.Strength.Abv)
		}
		abv = p.Strength.Abv
	case StrengthRanged:
		if abvPercent < p.Strength.MinAbv || abvPercent > p.Strength.MaxAbv {
			return 0, 0, fmt.Errorf("preset %s abv must be %g-%g%%", p.Key, p.Strength.MinAbv, p.Strength.MaxAbv)
		}
		abv = abvPercent
	default:
		return 0, 0, fmt.Errorf("preset %s has unknown strength kind %q", p.Key, p.Strength.Kind)
	}

	return ml, abv, nil
}

func (p Preset) validate() error {
	if p.Key == "" {
		return fmt.Errorf("preset missing key")
	}
	switch p.Volume.Kind {
	case VolumeFixed:
		if p.Volume.Ml <= 0 {
			return fmt.Errorf("preset %s: fixed volume must be positive", p.Key)
		}
	case VolumeChoice:
		if len(p.Volume.Options) == 0 {
			return fmt.Errorf("preset %s: choice volume needs options", p.Key)
		}
	case VolumeRanged:
		if p.Volume.MinMl <= 0 || p.Volume.MaxMl < p.Volume.MinMl {
			return fmt.Errorf("preset %s: bad volume range", p.Key)
		}
	default:
		return fmt.Errorf("preset %s: unknown volume kind %q", p.Key, p.Volume.Kind)
	}
	switch p.Strength.Kind {
	case StrengthFixed:
		if p.Strength.Abv <= 0 || p.Strength.Abv > 100 {
			return fmt.Errorf("preset %s: bad fixed abv", p.Key)
		}
	case StrengthRanged:
		if p.Strength.MinAbv <= 0 || p.Strength.MaxAbv < p.Strength.MinAbv || p.Strength.MaxAbv > 100 {
			return fmt.Errorf("preset %s: bad abv range", p.Key)
		}
	default:
		return fmt.Errorf("preset %s: unknown strength kind %q", p.Key, p.Strength.Kind)
	}
	return nil
}

// LoadCatalog reads a preset catalog from a YAML file
func LoadCatalog(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var catalog []Preset
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("presets file %s is empty", path)
	}
	for _, p := range catalog {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
