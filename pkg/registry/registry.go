package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/pkg/models"
)

const (
	componentsDir = "components"
	dirCompat     = "compat"
	dirDriver     = "driver"
	dirTranslator = "translator"
	manifestFile  = "manifest.json"
)

// ComponentRegistry owns the on-disk registry of installable side-by-side
// components (compat layer, GPU driver, translator), keyed by (type, id).
// An installed component is immutable: installing an existing id fails
// without touching the installation.
type ComponentRegistry struct {
	root string
}

// NewComponentRegistry creates a registry rooted at dataDir/components.
func NewComponentRegistry(dataDir string) (*ComponentRegistry, error) {
	root := filepath.Join(dataDir, componentsDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, apperrors.IO(err, "REGISTRY_INIT", "failed to create components directory")
	}
	return &ComponentRegistry{root: root}, nil
}

// Root returns the registry root directory.
func (r *ComponentRegistry) Root() string { return r.root }

// DirForType maps a component type to its registry subdirectory, or ""
// for an unknown type.
func (r *ComponentRegistry) DirForType(componentType string) string {
	switch componentType {
	case models.ComponentCompatLayer:
		return filepath.Join(r.root, dirCompat)
	case models.ComponentGPUDriver:
		return filepath.Join(r.root, dirDriver)
	case models.ComponentTranslator:
		return filepath.Join(r.root, dirTranslator)
	default:
		return ""
	}
}

// ListInstalled returns the installed component ids for a type. Each
// subdirectory containing a manifest is one component.
func (r *ComponentRegistry) ListInstalled(componentType string) []string {
	dir := r.DirForType(componentType)
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), manifestFile)); err == nil {
			ids = append(ids, e.Name())
		}
	}
	return ids
}

// Path returns the installation directory for (type, id), or "" when the
// component is not installed.
func (r *ComponentRegistry) Path(componentType, id string) string {
	if id == "" {
		return ""
	}
	dir := r.DirForType(componentType)
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, id)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ""
	}
	if _, err := os.Stat(filepath.Join(path, manifestFile)); err != nil {
		return ""
	}
	return path
}

// Manifest loads the manifest for an installed component. Missing or
// malformed manifests report absence.
func (r *ComponentRegistry) Manifest(componentType, id string) (*models.ComponentManifest, error) {
	path := r.Path(componentType, id)
	if path == "" {
		return nil, apperrors.NotFound("COMPONENT_MISSING", componentType+":"+id+" not installed")
	}
	data, err := os.ReadFile(filepath.Join(path, manifestFile))
	if err != nil {
		return nil, apperrors.IO(err, "COMPONENT_READ", "failed to read manifest for "+id)
	}
	var m models.ComponentManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Parse(err, "COMPONENT_PARSE", "malformed manifest for "+id)
	}
	return &m, nil
}

// Install creates the component directory and writes its manifest.
// Write-once: an id that already exists on disk fails without modifying
// the existing installation.
func (r *ComponentRegistry) Install(manifest *models.ComponentManifest) error {
	dir := r.DirForType(manifest.Type)
	if dir == "" {
		return apperrors.New(apperrors.KindUnknown, "COMPONENT_TYPE", "unknown component type "+manifest.Type)
	}
	path := filepath.Join(dir, manifest.ID)
	if _, err := os.Stat(path); err == nil {
		return apperrors.New(apperrors.KindUnknown, "COMPONENT_EXISTS", manifest.ID+" is already installed")
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return apperrors.IO(err, "COMPONENT_MKDIR", "failed to create component directory")
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		os.RemoveAll(path)
		return apperrors.Parse(err, "COMPONENT_ENCODE", "failed to encode manifest")
	}
	if err := os.WriteFile(filepath.Join(path, manifestFile), data, 0644); err != nil {
		os.RemoveAll(path)
		return apperrors.IO(err, "COMPONENT_WRITE", "failed to write manifest")
	}
	return nil
}

// Remove deletes an installed component.
func (r *ComponentRegistry) Remove(componentType, id string) error {
	path := r.Path(componentType, id)
	if path == "" {
		return apperrors.NotFound("COMPONENT_MISSING", componentType+":"+id+" not installed")
	}
	return os.RemoveAll(path)
}
