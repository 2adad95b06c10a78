package launch

import (
	"runtime"

	"github.com/loguefx/Steam-APK/internal/config"
	"github.com/loguefx/Steam-APK/pkg/models"
)

// CollectDeviceInfo builds the process-wide device fingerprint from
// configuration overrides, falling back to host facts. The result is
// treated as read-only for the rest of the process.
func CollectDeviceInfo(cfg config.DeviceConfig) *models.DeviceInfo {
	info := &models.DeviceInfo{
		DeviceModel: cfg.Model,
		AndroidSDK:  cfg.AndroidSDK,
		GPUFamily:   cfg.GPUFamily,
		RAMMb:       cfg.RAMMb,
		ABI:         cfg.ABI,
	}
	if info.AndroidSDK == 0 {
		// Android 8.0, the lowest level any component accepts by default.
		info.AndroidSDK = 26
	}
	if info.ABI == "" {
		info.ABI = hostABI()
	}
	info.Normalize()
	return info
}

func hostABI() string {
	switch runtime.GOARCH {
	case "arm64":
		return "arm64-v8a"
	case "arm":
		return "armeabi-v7a"
	default:
		return "arm64-v8a"
	}
}
