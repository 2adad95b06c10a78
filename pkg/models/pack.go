package models

import (
	"encoding/json"
	"time"
)

// PackManifest is the wire form of pack_cache/<packId>/manifest.json.
type PackManifest struct {
	PackID          string        `json:"pack_id"`
	CreatedAt       int64         `json:"created_at"`
	MinAppVersion   int           `json:"min_app_version"`
	ProfilesVersion int           `json:"profiles_version"`
	Checksum        *ChecksumInfo `json:"checksum,omitempty"`
}

// UnmarshalJSON applies manifest defaults: min_app_version and
// profiles_version default to 1, created_at to the current time.
func (m *PackManifest) UnmarshalJSON(data []byte) error {
	type alias PackManifest
	aux := alias{MinAppVersion: 1, ProfilesVersion: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt == 0 {
		aux.CreatedAt = time.Now().UnixMilli()
	}
	*m = PackManifest(aux)
	return nil
}

// SHA256 returns the declared manifest checksum, or "" when none.
func (m *PackManifest) SHA256() string {
	if m.Checksum == nil {
		return ""
	}
	return m.Checksum.SHA256
}

// RuleMatch is one ordered matching rule inside a pack. Empty exe_sha256
// and empty gpu_family act as wildcards.
type RuleMatch struct {
	ExeSHA256           string
	GPUFamily           []string
	AndroidMin          int
	RequiredCompatLayer string
	ProfileID           string
}

// ruleMatchJSON is the nested wire form of a rules.json entry.
type ruleMatchJSON struct {
	Game *struct {
		ExeSHA256 string `json:"exe_sha256"`
	} `json:"game"`
	Device *struct {
		GPUFamily  []string `json:"gpu_family"`
		AndroidMin *int     `json:"android_min"`
	} `json:"device"`
	Requires *struct {
		CompatLayer string `json:"compat_layer"`
	} `json:"requires"`
	ProfileID string `json:"profile_id"`
}

// RulesFile is the wire form of rules.json.
type RulesFile struct {
	Matches []RuleMatch
}

// UnmarshalJSON flattens the nested rule entries, defaulting android_min
// to 26 and dropping entries without a profile_id.
func (f *RulesFile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Matches []ruleMatchJSON `json:"matches"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Matches = f.Matches[:0]
	for _, m := range raw.Matches {
		if m.ProfileID == "" {
			continue
		}
		rule := RuleMatch{AndroidMin: 26, ProfileID: m.ProfileID}
		if m.Game != nil {
			rule.ExeSHA256 = m.Game.ExeSHA256
		}
		if m.Device != nil {
			rule.GPUFamily = m.Device.GPUFamily
			if m.Device.AndroidMin != nil {
				rule.AndroidMin = *m.Device.AndroidMin
			}
		}
		if m.Requires != nil {
			rule.RequiredCompatLayer = m.Requires.CompatLayer
		}
		f.Matches = append(f.Matches, rule)
	}
	return nil
}

// ConfigPack is a downloaded configuration pack: manifest metadata, ordered
// matching rules, and the profiles the rules point at. Packs only ever
// stage Candidates; they are never promoted without a stable run.
type ConfigPack struct {
	PackID          string
	CreatedAt       int64
	MinAppVersion   int
	ProfilesVersion int
	ChecksumSHA256  string
	Rules           []RuleMatch
	Profiles        map[string]*Profile
	Notes           string
}

// NewConfigPack assembles a pack from its parsed files. Rules whose target
// profile is absent from the profile mapping are dropped here.
func NewConfigPack(manifest *PackManifest, rules []RuleMatch, profiles map[string]*Profile, notes string) *ConfigPack {
	if profiles == nil {
		profiles = make(map[string]*Profile)
	}
	kept := make([]RuleMatch, 0, len(rules))
	for _, r := range rules {
		if _, ok := profiles[r.ProfileID]; !ok {
			continue
		}
		kept = append(kept, r)
	}
	return &ConfigPack{
		PackID:          manifest.PackID,
		CreatedAt:       manifest.CreatedAt,
		MinAppVersion:   manifest.MinAppVersion,
		ProfilesVersion: manifest.ProfilesVersion,
		ChecksumSHA256:  manifest.SHA256(),
		Rules:           kept,
		Profiles:        profiles,
		Notes:           notes,
	}
}

// ParsePackProfiles decodes a profiles.json payload. Both the wrapped form
// {"profiles": {...}} and a bare object keyed by profile id are accepted;
// entries missing an explicit id inherit their map key.
func ParsePackProfiles(data []byte) (map[string]*Profile, error) {
	var wrapped struct {
		Profiles map[string]*Profile `json:"profiles"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Profiles != nil {
		return normalizePackProfiles(wrapped.Profiles), nil
	}
	var bare map[string]*Profile
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return normalizePackProfiles(bare), nil
}

func normalizePackProfiles(in map[string]*Profile) map[string]*Profile {
	out := make(map[string]*Profile, len(in))
	for key, p := range in {
		if p == nil {
			continue
		}
		if p.ID == "" {
			p.ID = key
		}
		p.Normalize()
		out[p.ID] = p
	}
	return out
}
