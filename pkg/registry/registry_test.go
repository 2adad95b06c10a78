package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/pkg/models"
)

func newTestRegistry(t *testing.T) *ComponentRegistry {
	t.Helper()
	r, err := NewComponentRegistry(t.TempDir())
	require.NoError(t, err)
	return r
}

func TestInstallAndManifest(t *testing.T) {
	r := newTestRegistry(t)
	m := &models.ComponentManifest{
		ID:         "wine-9.0",
		Type:       models.ComponentCompatLayer,
		Version:    "9.0",
		Channel:    "stable",
		ABIs:       []string{"arm64-v8a"},
		MinAndroid: 28,
	}

	require.NoError(t, r.Install(m))

	got, err := r.Manifest(models.ComponentCompatLayer, "wine-9.0")
	require.NoError(t, err)
	assert.Equal(t, "9.0", got.Version)
	assert.Equal(t, 28, got.MinAndroid)

	path := r.Path(models.ComponentCompatLayer, "wine-9.0")
	assert.NotEmpty(t, path)
	assert.DirExists(t, path)
}

func TestInstallIsWriteOnce(t *testing.T) {
	r := newTestRegistry(t)
	m := &models.ComponentManifest{ID: "fex-2407", Type: models.ComponentTranslator, Version: "2407"}
	require.NoError(t, r.Install(m))

	again := &models.ComponentManifest{ID: "fex-2407", Type: models.ComponentTranslator, Version: "2408"}
	err := r.Install(again)
	require.Error(t, err)

	got, err := r.Manifest(models.ComponentTranslator, "fex-2407")
	require.NoError(t, err)
	assert.Equal(t, "2407", got.Version, "existing installation is untouched")
}

func TestInstallUnknownType(t *testing.T) {
	r := newTestRegistry(t)
	err := r.Install(&models.ComponentManifest{ID: "x", Type: "firmware"})
	assert.Error(t, err)
}

func TestListInstalledSkipsDirsWithoutManifest(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Install(&models.ComponentManifest{ID: "turnip-24", Type: models.ComponentGPUDriver, Version: "24"}))

	// A bare directory is not an installed component.
	require.NoError(t, os.MkdirAll(filepath.Join(r.DirForType(models.ComponentGPUDriver), "leftover"), 0755))

	assert.Equal(t, []string{"turnip-24"}, r.ListInstalled(models.ComponentGPUDriver))
}

func TestRemove(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Install(&models.ComponentManifest{ID: "wine-9.0", Type: models.ComponentCompatLayer, Version: "9.0"}))

	require.NoError(t, r.Remove(models.ComponentCompatLayer, "wine-9.0"))
	_, err := r.Manifest(models.ComponentCompatLayer, "wine-9.0")
	assert.True(t, apperrors.IsNotFound(err))

	err = r.Remove(models.ComponentCompatLayer, "wine-9.0")
	assert.True(t, apperrors.IsNotFound(err), "removing twice reports absence")
}
