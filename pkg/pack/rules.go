package pack

import (
	"strings"

	"github.com/loguefx/Steam-APK/pkg/models"
)

// MatchProfileID matches a (game, device) pair against a pack's ordered
// rule list and returns the first applying rule's profile id. A rule
// applies when the device OS level meets the rule's minimum, the rule's
// GPU-family set is empty or contains the device family (case-insensitive),
// and the rule's exe hash is empty or equals the supplied hash. A rule
// that requires a hash never matches when no hash is supplied.
//
// gameId is accepted for symmetry with the targeted apply flow; rules
// currently scope by hash and device only.
func MatchProfileID(p *models.ConfigPack, gameID, exeSHA256 string, device *models.DeviceInfo) (string, bool) {
	if p == nil || device == nil {
		return "", false
	}
	for _, rule := range p.Rules {
		if device.AndroidSDK < rule.AndroidMin {
			continue
		}
		if len(rule.GPUFamily) > 0 && !containsFold(rule.GPUFamily, device.GPUFamily) {
			continue
		}
		if rule.ExeSHA256 != "" && !strings.EqualFold(rule.ExeSHA256, exeSHA256) {
			continue
		}
		if _, ok := p.Profiles[rule.ProfileID]; !ok {
			continue
		}
		return rule.ProfileID, true
	}
	return "", false
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
