package models

// Profile sources.
const (
	SourceLocal = "local"
	SourcePack  = "pack"
	SourceSafe  = "safe"
)

// Component type keys used in Profile.Components.
const (
	ComponentCompatLayer = "compat_layer"
	ComponentGPUDriver   = "gpu_driver"
	ComponentTranslator  = "translator"
)

// DefaultSafeProfileID is the id of the built-in baseline profile that is
// guaranteed to exist for every game.
const DefaultSafeProfileID = "profile_safe_v1"

// Constraints holds optional device requirements for a profile.
type Constraints struct {
	AndroidMin int      `json:"android_min,omitempty"`
	GPUFamily  []string `json:"gpu_family,omitempty"`
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return c.AndroidMin == 0 && len(c.GPUFamily) == 0
}

// Profile describes a compatibility configuration: component selections plus
// tunables. Profiles are immutable once persisted under their id; changing
// content requires a new id.
type Profile struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Source      string                  `json:"source"`
	Components  map[string]string       `json:"components"`
	Settings    map[string]SettingValue `json:"settings"`
	Constraints Constraints             `json:"constraints"`
}

// Normalize fills zero-value fields with their documented defaults.
func (p *Profile) Normalize() {
	if p.Source == "" {
		p.Source = SourceLocal
	}
	if p.Components == nil {
		p.Components = make(map[string]string)
	}
	if p.Settings == nil {
		p.Settings = make(map[string]SettingValue)
	}
}

// Setting returns the named setting and whether it is present.
func (p *Profile) Setting(key string) (SettingValue, bool) {
	v, ok := p.Settings[key]
	return v, ok
}

// DefaultSafeProfile returns the built-in Safe baseline: empty component
// selections, stable translation preset, BGRA8 surface format.
func DefaultSafeProfile() *Profile {
	return &Profile{
		ID:     DefaultSafeProfileID,
		Name:   "Safe (Stable)",
		Source: SourceSafe,
		Components: map[string]string{
			ComponentCompatLayer: "",
			ComponentGPUDriver:   "",
			ComponentTranslator:  "",
		},
		Settings: map[string]SettingValue{
			"translation_preset": StringSetting("stable"),
			"surface_format":     StringSetting("BGRA8"),
		},
	}
}
