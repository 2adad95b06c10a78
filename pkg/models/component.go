package models

import "encoding/json"

// ChecksumInfo carries a content checksum.
type ChecksumInfo struct {
	SHA256 string `json:"sha256"`
}

// ComponentManifest describes one installable side-by-side component
// (compat layer, GPU driver, or translator). Write-once on disk.
type ComponentManifest struct {
	ID            string        `json:"id"`
	Type          string        `json:"type"`
	Version       string        `json:"version"`
	Channel       string        `json:"channel"`
	ABIs          []string      `json:"abi"`
	MinAndroid    int           `json:"min_android"`
	SupportedGPUs []string      `json:"supported_gpus"`
	Checksum      *ChecksumInfo `json:"checksum,omitempty"`
}

// UnmarshalJSON applies the documented defaults: channel "stable",
// min_android 26.
func (m *ComponentManifest) UnmarshalJSON(data []byte) error {
	type alias ComponentManifest
	aux := alias{Channel: "stable", MinAndroid: 26}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = ComponentManifest(aux)
	return nil
}

// SHA256 returns the manifest checksum, or "" when none was recorded.
func (m *ComponentManifest) SHA256() string {
	if m.Checksum == nil {
		return ""
	}
	return m.Checksum.SHA256
}

// SupportsABI reports whether the component runs on the given ABI.
// An empty ABI list means any.
func (m *ComponentManifest) SupportsABI(abi string) bool {
	if len(m.ABIs) == 0 {
		return true
	}
	for _, a := range m.ABIs {
		if a == abi {
			return true
		}
	}
	return false
}

// SupportsGPU reports whether the component supports the given GPU family.
// An empty list means any.
func (m *ComponentManifest) SupportsGPU(family string) bool {
	if len(m.SupportedGPUs) == 0 {
		return true
	}
	for _, g := range m.SupportedGPUs {
		if g == family {
			return true
		}
	}
	return false
}
