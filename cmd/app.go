package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/loguefx/Steam-APK/internal/config"
	"github.com/loguefx/Steam-APK/internal/i18n"
	"github.com/loguefx/Steam-APK/pkg/launch"
	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/pack"
	"github.com/loguefx/Steam-APK/pkg/registry"
	"github.com/loguefx/Steam-APK/pkg/store"
)

// app bundles the fully wired service graph for one command invocation.
type app struct {
	cfg         *config.Config
	store       *store.ProfileStore
	registry    *registry.ComponentRegistry
	packs       *pack.Manager
	device      *models.DeviceInfo
	monitor     *launch.CrashMonitor
	coordinator *launch.Coordinator
}

func defaultSafeID() string { return models.DefaultSafeProfileID }

// newApp loads configuration and constructs every service on top of the
// shared data directory. Commands call this in RunE, after flags and i18n
// are settled.
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("cmd.errLoadConfig"), err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("cmd.errDataDir"), err)
	}

	profileStore, err := store.NewProfileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	componentRegistry, err := registry.NewComponentRegistry(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	packManager, err := pack.NewManager(
		cfg.DataDir,
		time.Duration(cfg.Packs.TimeoutSeconds)*time.Second,
		cfg.Packs.MaxCached,
	)
	if err != nil {
		return nil, err
	}

	device := launch.CollectDeviceInfo(cfg.Device)
	monitor, err := launch.NewCrashMonitor(cfg.DataDir, profileStore)
	if err != nil {
		return nil, err
	}
	resolver := launch.NewResolver(profileStore, componentRegistry, models.DefaultSafeProfileID)
	validator := launch.NewValidator(componentRegistry, device)
	coordinator := launch.NewCoordinator(cfg.DataDir, profileStore, resolver, validator, monitor, device)

	return &app{
		cfg:         cfg,
		store:       profileStore,
		registry:    componentRegistry,
		packs:       packManager,
		device:      device,
		monitor:     monitor,
		coordinator: coordinator,
	}, nil
}
