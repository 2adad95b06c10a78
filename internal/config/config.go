package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// PacksConfig controls the pack download pipeline.
type PacksConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	MaxCached      int    `mapstructure:"max_cached"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DeviceConfig overrides the collected device fingerprint. Fields left at
// zero value fall back to host facts.
type DeviceConfig struct {
	Model      string `mapstructure:"model"`
	AndroidSDK int    `mapstructure:"android_sdk"`
	GPUFamily  string `mapstructure:"gpu_family"`
	RAMMb      int64  `mapstructure:"ram_mb"`
	ABI        string `mapstructure:"abi"`
}

// Config is the application configuration.
type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	Packs   PacksConfig  `mapstructure:"packs"`
	Device  DeviceConfig `mapstructure:"device"`
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gamehub"
	}
	return filepath.Join(home, ".gamehub")
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("packs.base_url", "")
	viper.SetDefault("packs.max_cached", 5)
	viper.SetDefault("packs.timeout_seconds", 15)
	viper.SetDefault("device.model", "")
	viper.SetDefault("device.android_sdk", 0)
	viper.SetDefault("device.gpu_family", "")
	viper.SetDefault("device.ram_mb", 0)
	viper.SetDefault("device.abi", "")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("gamehub")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gamehub"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is not an error, we'll use defaults
	}

	viper.SetEnvPrefix("GAMEHUB")
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// SaveTemplate saves a configuration template
func SaveTemplate(path string) error {
	templateContent := `# GameHub Configuration File

# Root directory for profiles, components, pack cache, sessions and
# shortcut overrides. Defaults to ~/.gamehub
data_dir: ""

packs:
  # Base URL for configuration packs (expects manifest.json, rules.json
  # and profiles.json under this path)
  base_url: ""

  # Number of downloaded packs to keep in the local cache
  max_cached: 5

  # HTTP timeout in seconds for pack downloads
  timeout_seconds: 15

device:
  # Device fingerprint overrides. Leave empty to use host facts.
  model: ""
  android_sdk: 0
  gpu_family: ""
  ram_mb: 0
  abi: ""
`

	return os.WriteFile(path, []byte(templateContent), 0644)
}
