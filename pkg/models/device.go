package models

import "encoding/json"

// DeviceInfo is the immutable device fingerprint used for compatibility
// gating. Constructed once per process.
type DeviceInfo struct {
	DeviceModel string `json:"device_model"`
	AndroidSDK  int    `json:"android_sdk"`
	GPUFamily   string `json:"gpu_family"`
	RAMMb       int64  `json:"ram_mb"`
	ABI         string `json:"abi"`
}

// UnmarshalJSON applies fingerprint defaults for absent fields.
func (d *DeviceInfo) UnmarshalJSON(data []byte) error {
	type alias DeviceInfo
	aux := alias{GPUFamily: "unknown", ABI: "arm64-v8a"}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = DeviceInfo(aux)
	return nil
}

// Normalize fills zero-value fields with their documented defaults.
func (d *DeviceInfo) Normalize() {
	if d.GPUFamily == "" {
		d.GPUFamily = "unknown"
	}
	if d.ABI == "" {
		d.ABI = "arm64-v8a"
	}
}
