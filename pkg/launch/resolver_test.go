package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/registry"
	"github.com/loguefx/Steam-APK/pkg/store"
)

type launchFixture struct {
	dataDir  string
	store    *store.ProfileStore
	registry *registry.ComponentRegistry
	resolver *Resolver
}

func newLaunchFixture(t *testing.T) *launchFixture {
	t.Helper()
	dataDir := t.TempDir()
	profileStore, err := store.NewProfileStore(dataDir)
	require.NoError(t, err)
	reg, err := registry.NewComponentRegistry(dataDir)
	require.NoError(t, err)
	return &launchFixture{
		dataDir:  dataDir,
		store:    profileStore,
		registry: reg,
		resolver: NewResolver(profileStore, reg, models.DefaultSafeProfileID),
	}
}

func (f *launchFixture) saveProfile(t *testing.T, id, preset string) {
	t.Helper()
	p := &models.Profile{
		ID:     id,
		Name:   id,
		Source: models.SourceLocal,
		Settings: map[string]models.SettingValue{
			"translation_preset": models.StringSetting(preset),
		},
	}
	require.NoError(t, f.store.SaveProfile(p))
}

func TestResolveNewGameUsesSafe(t *testing.T) {
	f := newLaunchFixture(t)

	result := f.resolver.Resolve("g1", false)

	assert.Equal(t, models.DefaultSafeProfileID, result.ResolvedProfileID)
	assert.Empty(t, result.FallbackReason)
	assert.Equal(t, "-all", result.Env["WINEDEBUG"])
	assert.Equal(t, "1", result.Env["FEX_TSOEnabled"], "Safe baseline uses the stable preset")
}

func TestResolveTierOrder(t *testing.T) {
	f := newLaunchFixture(t)
	f.saveProfile(t, "p_cand", "compatibility")
	f.saveProfile(t, "p_lkg", "performance")

	f.store.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	f.store.SetLkg("g1", "p_lkg")
	f.store.SetCandidate("g1", "p_cand")

	t.Run("candidate beats lkg", func(t *testing.T) {
		result := f.resolver.Resolve("g1", false)
		assert.Equal(t, "p_cand", result.ResolvedProfileID)
		assert.Equal(t, "0", result.Env["FEX_Multiblock"], "compatibility preset disables multiblock")
	})

	t.Run("pinned ignores candidate", func(t *testing.T) {
		f.store.SetPinned("g1", true)
		defer f.store.SetPinned("g1", false)

		result := f.resolver.Resolve("g1", false)
		assert.Equal(t, "p_lkg", result.ResolvedProfileID)
		assert.NotContains(t, result.Env, "FEX_TSOEnabled", "performance preset adds nothing")
	})

	t.Run("force safe beats everything", func(t *testing.T) {
		result := f.resolver.Resolve("g1", true)
		assert.Equal(t, models.DefaultSafeProfileID, result.ResolvedProfileID)
		assert.Equal(t, FallbackOneTimeSafe, result.FallbackReason)
	})

	t.Run("lkg after candidate cleared", func(t *testing.T) {
		f.store.SetCandidate("g1", "")
		result := f.resolver.Resolve("g1", false)
		assert.Equal(t, "p_lkg", result.ResolvedProfileID)
	})
}

func TestResolveMissingProfileFallsBack(t *testing.T) {
	f := newLaunchFixture(t)
	f.store.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	f.store.SetCandidate("g1", "p_gone")

	result := f.resolver.Resolve("g1", false)

	assert.Equal(t, models.DefaultSafeProfileID, result.ResolvedProfileID)
	assert.Equal(t, FallbackProfileMissing, result.FallbackReason)
	require.NotNil(t, result.Profile)
}

func TestResolveComponentPaths(t *testing.T) {
	f := newLaunchFixture(t)
	require.NoError(t, f.registry.Install(&models.ComponentManifest{
		ID:      "wine-9.0",
		Type:    models.ComponentCompatLayer,
		Version: "9.0",
	}))

	p := &models.Profile{
		ID:     "p_comp",
		Name:   "With components",
		Source: models.SourceLocal,
		Components: map[string]string{
			models.ComponentCompatLayer: "wine-9.0",
			models.ComponentTranslator:  "fex-missing",
		},
	}
	require.NoError(t, f.store.SaveProfile(p))
	f.store.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	f.store.SetCandidate("g1", "p_comp")

	result := f.resolver.Resolve("g1", false)

	assert.Contains(t, result.ComponentPaths, models.ComponentCompatLayer)
	assert.NotContains(t, result.ComponentPaths, models.ComponentTranslator,
		"uninstalled components have no path; validation rejects them")
}
