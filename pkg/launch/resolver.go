package launch

import (
	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/registry"
	"github.com/loguefx/Steam-APK/pkg/store"
)

// Fallback reasons reported on a ResolveResult.
const (
	FallbackOneTimeSafe    = "one_time_safe_fallback"
	FallbackProfileMissing = "profile_missing"
)

// ResolveResult is the outcome of tier resolution: the chosen profile, the
// paths of its installed components, and the environment handed to the
// runtime.
type ResolveResult struct {
	ResolvedProfileID string
	Profile           *models.Profile
	ComponentPaths    map[string]string
	Env               map[string]string
	FallbackReason    string
}

// Resolver decides which profile tier is active for a launch and derives
// paths and environment for the runtime. Tier order: forced Safe, pinned
// LKG, Candidate, LKG, Safe.
type Resolver struct {
	store                *store.ProfileStore
	registry             *registry.ComponentRegistry
	defaultSafeProfileID string
}

// NewResolver creates a resolver.
func NewResolver(profileStore *store.ProfileStore, reg *registry.ComponentRegistry, defaultSafeProfileID string) *Resolver {
	if defaultSafeProfileID == "" {
		defaultSafeProfileID = models.DefaultSafeProfileID
	}
	return &Resolver{
		store:                profileStore,
		registry:             reg,
		defaultSafeProfileID: defaultSafeProfileID,
	}
}

// Resolve picks the active profile for gameID. forceSafe locks this launch
// to the Safe tier (the one-time fallback after a quick crash).
func (r *Resolver) Resolve(gameID string, forceSafe bool) *ResolveResult {
	state := r.store.GetOrCreateGameState(gameID, r.defaultSafeProfileID)

	safeID := state.SafeProfileID
	if safeID == "" {
		safeID = r.defaultSafeProfileID
	}

	var profileID, fallbackReason string
	switch {
	case forceSafe || state.SafeProfileID == "":
		profileID = safeID
		if forceSafe {
			fallbackReason = FallbackOneTimeSafe
		}
	case state.Pinned:
		profileID = state.LkgProfileID
		if profileID == "" {
			profileID = state.SafeProfileID
		}
	case state.CandidateProfileID != "":
		profileID = state.CandidateProfileID
	case state.LkgProfileID != "":
		profileID = state.LkgProfileID
	default:
		profileID = safeID
	}

	profile, _ := r.store.LoadProfile(profileID)
	if profile == nil {
		profileID = safeID
		profile, _ = r.store.LoadProfile(profileID)
		if profile == nil {
			profile = models.DefaultSafeProfile()
		}
		fallbackReason = FallbackProfileMissing
	}

	paths := make(map[string]string)
	for componentType, id := range profile.Components {
		if id == "" {
			continue
		}
		if path := r.registry.Path(componentType, id); path != "" {
			paths[componentType] = path
		}
	}

	return &ResolveResult{
		ResolvedProfileID: profileID,
		Profile:           profile,
		ComponentPaths:    paths,
		Env:               deriveEnv(profile),
		FallbackReason:    fallbackReason,
	}
}

// deriveEnv maps the translation preset to translator flags. The mapping
// is a fixed table: compatibility and stable enable TSO emulation and
// reduced-precision x87, compatibility additionally disables multiblock
// translation, performance uses translator defaults.
func deriveEnv(profile *models.Profile) map[string]string {
	env := map[string]string{"WINEDEBUG": "-all"}
	preset, ok := profile.Setting("translation_preset")
	if !ok {
		return env
	}
	switch preset.String() {
	case "compatibility":
		env["FEX_TSOEnabled"] = "1"
		env["FEX_X87ReducedPrecision"] = "1"
		env["FEX_Multiblock"] = "0"
	case "stable":
		env["FEX_TSOEnabled"] = "1"
		env["FEX_X87ReducedPrecision"] = "1"
	}
	// performance: no extra env (use translator defaults)
	return env
}
