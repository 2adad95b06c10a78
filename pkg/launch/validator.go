package launch

import (
	"fmt"
	"strings"

	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/registry"
)

// Validation outcomes.
const (
	ResultOK = iota
	ResultWarn
	ResultBlock
)

// SuggestedSafeMode is the action offered whenever validation blocks.
const SuggestedSafeMode = "Apply Safe Mode"

// ValidationResult is the outcome of validating a resolved profile against
// the device and the component registry.
type ValidationResult struct {
	Result          int
	Message         string
	SuggestedAction string
}

// IsOk reports a clean validation.
func (v *ValidationResult) IsOk() bool { return v.Result == ResultOK }

// IsBlock reports an incompatibility that must force the Safe tier.
func (v *ValidationResult) IsBlock() bool { return v.Result == ResultBlock }

// Validator checks a resolved profile's constraints against the device
// fingerprint and installed components before launch.
type Validator struct {
	registry *registry.ComponentRegistry
	device   *models.DeviceInfo
}

// NewValidator creates a validator for the given device.
func NewValidator(reg *registry.ComponentRegistry, device *models.DeviceInfo) *Validator {
	return &Validator{registry: reg, device: device}
}

// Validate checks device OS level, profile GPU constraints, and every
// referenced component's manifest. Any blocking cause yields BLOCK with
// all causes concatenated; warnings alone yield WARN. Components whose
// path the resolver already found are not re-checked (resolution proved
// they exist).
func (v *Validator) Validate(profile *models.Profile, resolved *ResolveResult) *ValidationResult {
	var errs, warnings []string

	if min := profile.Constraints.AndroidMin; min > 0 && v.device.AndroidSDK < min {
		errs = append(errs, fmt.Sprintf("Android %d below required %d", v.device.AndroidSDK, min))
	}

	if families := profile.Constraints.GPUFamily; len(families) > 0 {
		found := false
		for _, f := range families {
			if f == v.device.GPUFamily {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("GPU %s not in profile list", v.device.GPUFamily))
		}
	}

	for componentType, id := range profile.Components {
		if id == "" {
			continue
		}
		if _, ok := resolved.ComponentPaths[componentType]; ok {
			continue
		}
		manifest, _ := v.registry.Manifest(componentType, id)
		if manifest == nil {
			errs = append(errs, fmt.Sprintf("Missing component %s:%s", componentType, id))
			continue
		}
		if !manifest.SupportsABI(v.device.ABI) {
			errs = append(errs, fmt.Sprintf("Component %s ABI %v does not match %s", id, manifest.ABIs, v.device.ABI))
		}
		if manifest.MinAndroid > v.device.AndroidSDK {
			errs = append(errs, fmt.Sprintf("Component %s requires Android %d", id, manifest.MinAndroid))
		}
		if !manifest.SupportsGPU(v.device.GPUFamily) {
			warnings = append(warnings, fmt.Sprintf("GPU %s not in component %s supported list", v.device.GPUFamily, id))
		}
	}

	if len(errs) > 0 {
		return &ValidationResult{
			Result:          ResultBlock,
			Message:         "Invalid configuration: " + strings.Join(errs, "; "),
			SuggestedAction: SuggestedSafeMode,
		}
	}
	if len(warnings) > 0 {
		return &ValidationResult{Result: ResultWarn, Message: strings.Join(warnings, "; ")}
	}
	return &ValidationResult{Result: ResultOK}
}
