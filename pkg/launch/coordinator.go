package launch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/store"
	"github.com/loguefx/Steam-APK/pkg/utils"
)

// Environment keys derived from profile settings and shortcut overrides.
const (
	EnvSurfaceFormat = "GAMEHUB_SURFACE_FORMAT"
	EnvCPUCoreLimit  = "WINELIMITCORES"
	EnvVRAMLimitMb   = "GAMEHUB_VRAM_LIMIT_MB"
)

const contextFile = "launch_context.json"

// launchContext is the in-flight launch remembered between PrepareLaunch
// and OnGameExit. It is persisted so the exit report may arrive from a
// different process than the one that prepared the launch.
type launchContext struct {
	LaunchID  string `json:"launch_id"`
	GameID    string `json:"game_id"`
	ProfileID string `json:"profile_id"`
	StartedAt int64  `json:"started_at"`
}

// Coordinator is the façade external callers use: "prepare a launch" and
// "record a launch outcome". It composes the resolver, validator and crash
// monitor; construct one per process with explicit dependencies.
type Coordinator struct {
	dataDir   string
	store     *store.ProfileStore
	resolver  *Resolver
	validator *Validator
	monitor   *CrashMonitor
	device    *models.DeviceInfo
	log       utils.Logger

	current *launchContext
	result  *ResolveResult
}

// NewCoordinator wires a coordinator from its collaborators.
func NewCoordinator(dataDir string, profileStore *store.ProfileStore, resolver *Resolver, validator *Validator, monitor *CrashMonitor, device *models.DeviceInfo) *Coordinator {
	return &Coordinator{
		dataDir:   dataDir,
		store:     profileStore,
		resolver:  resolver,
		validator: validator,
		monitor:   monitor,
		device:    device,
		log:       utils.GetGlobalLogger().WithField("component", "launch"),
	}
}

// PrepareLaunch resolves and validates the profile for a game and records
// the launch context. A blocking validation forces a Safe re-resolution
// (whose own validation is not re-checked). The returned environment has
// the per-game shortcut overrides already merged in.
func (c *Coordinator) PrepareLaunch(gameID string) (*ResolveResult, *ValidationResult) {
	c.store.EnsureDefaultSafeProfile()

	useSafe := c.monitor.ShouldUseSafeNextRun(gameID)
	if useSafe {
		c.monitor.ClearUseSafeNextRun(gameID)
	}

	result := c.resolver.Resolve(gameID, useSafe)
	validation := c.validator.Validate(result.Profile, result)
	if validation.IsBlock() {
		c.log.Warn("validation blocked %s for %s: %s", result.ResolvedProfileID, gameID, validation.Message)
		result = c.resolver.Resolve(gameID, true)
	}

	c.applyEffectiveEnv(gameID, result)

	c.current = &launchContext{
		LaunchID:  uuid.NewString(),
		GameID:    gameID,
		ProfileID: result.ResolvedProfileID,
		StartedAt: time.Now().UnixMilli(),
	}
	c.result = result
	c.persistContext()

	c.log.Info("prepared launch %s: game=%s profile=%s", c.current.LaunchID, gameID, result.ResolvedProfileID)
	return result, validation
}

// CurrentResolveResult returns the resolve result of the in-flight launch,
// or nil when none is in progress.
func (c *Coordinator) CurrentResolveResult() *ResolveResult { return c.result }

// OnGameExit classifies the exit code, forwards the session to the crash
// monitor, and clears the launch context. A report with no launch in
// progress is a no-op.
func (c *Coordinator) OnGameExit(exitCode int) {
	ctx := c.current
	if ctx == nil {
		ctx = c.loadContext()
	}
	if ctx == nil {
		return
	}
	reason := models.ExitReasonFromCode(exitCode)
	c.monitor.RecordSessionEnd(ctx.GameID, ctx.ProfileID, ctx.StartedAt, reason)
	c.clearContext()
}

// OnLaunchAborted clears the launch context without recording a session
// (the user cancelled before the runtime reported any exit).
func (c *Coordinator) OnLaunchAborted() {
	c.clearContext()
}

// applyEffectiveEnv merges shortcut overrides over profile settings into
// the runtime environment. Override order: shortcut > profile.
func (c *Coordinator) applyEffectiveEnv(gameID string, result *ResolveResult) {
	surface, cores, vram := "", "", ""
	if v, ok := result.Profile.Setting("surface_format"); ok {
		surface = v.String()
	}
	if v, ok := result.Profile.Setting("cpu_core_limit"); ok {
		cores = v.String()
	}
	if v, ok := result.Profile.Setting("vram_limit"); ok {
		vram = v.String()
	}

	o := LoadShortcutOverrides(c.dataDir, gameID)
	if o.SurfaceFormat != "" {
		surface = o.SurfaceFormat
	}
	if o.CPUCoreLimit != "" {
		cores = o.CPUCoreLimit
	}
	if o.VRAMLimitMb != "" {
		vram = o.VRAMLimitMb
	}

	if surface != "" {
		result.Env[EnvSurfaceFormat] = surface
	}
	if cores != "" {
		result.Env[EnvCPUCoreLimit] = cores
	}
	if vram != "" {
		result.Env[EnvVRAMLimitMb] = vram
	}
}

func (c *Coordinator) persistContext() {
	data, err := json.MarshalIndent(c.current, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(filepath.Join(c.dataDir, contextFile), data, 0644); err != nil {
		c.log.Warn("failed to persist launch context: %v", err)
	}
}

func (c *Coordinator) loadContext() *launchContext {
	data, err := os.ReadFile(filepath.Join(c.dataDir, contextFile))
	if err != nil {
		return nil
	}
	var ctx launchContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil
	}
	return &ctx
}

func (c *Coordinator) clearContext() {
	c.current = nil
	c.result = nil
	if err := os.Remove(filepath.Join(c.dataDir, contextFile)); err != nil && !os.IsNotExist(err) {
		c.log.Warn("failed to clear launch context: %v", err)
	}
}
