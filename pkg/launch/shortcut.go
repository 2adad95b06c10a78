package launch

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const shortcutsDir = "shortcuts"

// ShortcutOverrides are per-game tunable overrides kept next to the game's
// shortcut. They take precedence over resolved profile settings when the
// effective environment is derived.
type ShortcutOverrides struct {
	SurfaceFormat string `yaml:"surface_format"`
	CPUCoreLimit  string `yaml:"cpu_core_limit"`
	VRAMLimitMb   string `yaml:"vram_limit"`
}

// LoadShortcutOverrides reads shortcuts/<gameID>.yaml under dataDir.
// A missing or malformed file yields empty overrides.
func LoadShortcutOverrides(dataDir, gameID string) ShortcutOverrides {
	var o ShortcutOverrides
	data, err := os.ReadFile(filepath.Join(dataDir, shortcutsDir, gameID+".yaml"))
	if err != nil {
		return o
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return ShortcutOverrides{}
	}
	return o
}

// SaveShortcutOverrides persists per-game overrides.
func SaveShortcutOverrides(dataDir, gameID string, o ShortcutOverrides) error {
	dir := filepath.Join(dataDir, shortcutsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, gameID+".yaml"), data, 0644)
}
