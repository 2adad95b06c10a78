package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/registry"
)

func newTestValidator(t *testing.T, device *models.DeviceInfo) (*Validator, *registry.ComponentRegistry) {
	t.Helper()
	reg, err := registry.NewComponentRegistry(t.TempDir())
	require.NoError(t, err)
	return NewValidator(reg, device), reg
}

func emptyResolved() *ResolveResult {
	return &ResolveResult{ComponentPaths: map[string]string{}}
}

func TestValidateOkOnUnconstrainedProfile(t *testing.T) {
	v, _ := newTestValidator(t, &models.DeviceInfo{AndroidSDK: 28, GPUFamily: "adreno", ABI: "arm64-v8a"})
	p := &models.Profile{ID: "p1", Name: "Plain"}
	p.Normalize()

	result := v.Validate(p, emptyResolved())
	assert.True(t, result.IsOk())
	assert.Empty(t, result.Message)
}

func TestValidateBlocksOnAndroidMin(t *testing.T) {
	v, _ := newTestValidator(t, &models.DeviceInfo{AndroidSDK: 26, GPUFamily: "adreno", ABI: "arm64-v8a"})
	p := &models.Profile{ID: "p1", Name: "New OS only", Constraints: models.Constraints{AndroidMin: 30}}
	p.Normalize()

	result := v.Validate(p, emptyResolved())
	assert.True(t, result.IsBlock())
	assert.Contains(t, result.Message, "Invalid configuration")
	assert.Equal(t, SuggestedSafeMode, result.SuggestedAction)
}

func TestValidateWarnsOnGPUMismatch(t *testing.T) {
	v, _ := newTestValidator(t, &models.DeviceInfo{AndroidSDK: 30, GPUFamily: "powervr", ABI: "arm64-v8a"})
	p := &models.Profile{ID: "p1", Name: "GPU scoped", Constraints: models.Constraints{GPUFamily: []string{"adreno", "mali"}}}
	p.Normalize()

	result := v.Validate(p, emptyResolved())
	assert.Equal(t, ResultWarn, result.Result)
	assert.False(t, result.IsBlock(), "GPU mismatch warns, it never blocks")
}

func TestValidateMissingComponentBlocks(t *testing.T) {
	v, _ := newTestValidator(t, &models.DeviceInfo{AndroidSDK: 30, GPUFamily: "adreno", ABI: "arm64-v8a"})
	p := &models.Profile{
		ID:   "p1",
		Name: "Broken",
		Components: map[string]string{
			models.ComponentCompatLayer: "wine-gone",
		},
	}
	p.Normalize()

	result := v.Validate(p, emptyResolved())
	assert.True(t, result.IsBlock())
	assert.Contains(t, result.Message, "wine-gone")
}

func TestValidateComponentConstraints(t *testing.T) {
	device := &models.DeviceInfo{AndroidSDK: 28, GPUFamily: "adreno", ABI: "arm64-v8a"}
	v, reg := newTestValidator(t, device)

	require.NoError(t, reg.Install(&models.ComponentManifest{
		ID:         "fex-armv7",
		Type:       models.ComponentTranslator,
		Version:    "1",
		ABIs:       []string{"armeabi-v7a"},
		MinAndroid: 26,
	}))
	require.NoError(t, reg.Install(&models.ComponentManifest{
		ID:            "turnip-new",
		Type:          models.ComponentGPUDriver,
		Version:       "1",
		MinAndroid:    31,
		SupportedGPUs: []string{"adreno"},
	}))

	t.Run("abi mismatch blocks", func(t *testing.T) {
		p := &models.Profile{ID: "p1", Name: "p1", Components: map[string]string{models.ComponentTranslator: "fex-armv7"}}
		p.Normalize()
		result := v.Validate(p, emptyResolved())
		assert.True(t, result.IsBlock())
	})

	t.Run("min android blocks", func(t *testing.T) {
		p := &models.Profile{ID: "p2", Name: "p2", Components: map[string]string{models.ComponentGPUDriver: "turnip-new"}}
		p.Normalize()
		result := v.Validate(p, emptyResolved())
		assert.True(t, result.IsBlock())
		assert.Contains(t, result.Message, "requires Android 31")
	})

	t.Run("resolved components are not re-checked", func(t *testing.T) {
		p := &models.Profile{ID: "p3", Name: "p3", Components: map[string]string{models.ComponentTranslator: "fex-armv7"}}
		p.Normalize()
		resolved := &ResolveResult{ComponentPaths: map[string]string{models.ComponentTranslator: "/some/path"}}
		result := v.Validate(p, resolved)
		assert.True(t, result.IsOk())
	})
}
