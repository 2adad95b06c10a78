package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loguefx/Steam-APK/pkg/models"
)

func testDevice(sdk int, gpu string) *models.DeviceInfo {
	return &models.DeviceInfo{AndroidSDK: sdk, GPUFamily: gpu, ABI: "arm64-v8a"}
}

func testPack(rules ...models.RuleMatch) *models.ConfigPack {
	profiles := make(map[string]*models.Profile)
	for _, r := range rules {
		profiles[r.ProfileID] = &models.Profile{ID: r.ProfileID, Name: r.ProfileID}
	}
	return &models.ConfigPack{PackID: "pack_t", Rules: rules, Profiles: profiles}
}

func TestMatchProfileID(t *testing.T) {
	tests := []struct {
		name    string
		pack    *models.ConfigPack
		exeHash string
		device  *models.DeviceInfo
		wantID  string
		wantOK  bool
	}{
		{
			name:   "first match wins",
			pack:   testPack(models.RuleMatch{AndroidMin: 26, ProfileID: "first"}, models.RuleMatch{AndroidMin: 26, ProfileID: "second"}),
			device: testDevice(30, "adreno"),
			wantID: "first",
			wantOK: true,
		},
		{
			name:   "android_min below device is skipped",
			pack:   testPack(models.RuleMatch{AndroidMin: 28, ProfileID: "new_os"}, models.RuleMatch{AndroidMin: 26, ProfileID: "old_os"}),
			device: testDevice(26, "adreno"),
			wantID: "old_os",
			wantOK: true,
		},
		{
			name:   "gpu family is case-insensitive",
			pack:   testPack(models.RuleMatch{AndroidMin: 26, GPUFamily: []string{"Adreno"}, ProfileID: "gpu"}),
			device: testDevice(30, "adreno"),
			wantID: "gpu",
			wantOK: true,
		},
		{
			name:   "empty gpu family is a wildcard",
			pack:   testPack(models.RuleMatch{AndroidMin: 26, ProfileID: "any_gpu"}),
			device: testDevice(30, "powervr"),
			wantID: "any_gpu",
			wantOK: true,
		},
		{
			name:   "gpu mismatch is skipped",
			pack:   testPack(models.RuleMatch{AndroidMin: 26, GPUFamily: []string{"mali"}, ProfileID: "mali_only"}),
			device: testDevice(30, "adreno"),
			wantOK: false,
		},
		{
			name:    "exe hash matches case-insensitively",
			pack:    testPack(models.RuleMatch{AndroidMin: 26, ExeSHA256: "ABC123", ProfileID: "hashed"}),
			exeHash: "abc123",
			device:  testDevice(30, "adreno"),
			wantID:  "hashed",
			wantOK:  true,
		},
		{
			name:   "hash-scoped rule never matches without a hash",
			pack:   testPack(models.RuleMatch{AndroidMin: 26, ExeSHA256: "abc123", ProfileID: "hashed"}),
			device: testDevice(30, "adreno"),
			wantOK: false,
		},
		{
			name:   "nil pack",
			pack:   nil,
			device: testDevice(30, "adreno"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := MatchProfileID(tt.pack, "g1", tt.exeHash, tt.device)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
