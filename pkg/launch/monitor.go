package launch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/store"
	"github.com/loguefx/Steam-APK/pkg/utils"
)

const (
	sessionsDir  = "sessions"
	flagsDir     = "flags"
	safeFlagName = "use_safe_next_run_"
)

// CrashMonitor records session outcomes and drives the promotion/rollback
// state machine: a stability pass promotes the Candidate to LKG, a quick
// crash rolls it back and arms a one-shot "use Safe next run" flag.
// Sessions between the two thresholds only produce a log entry; a crash
// after the stability threshold does not roll back (stability, once
// reached, is sticky).
type CrashMonitor struct {
	store    *store.ProfileStore
	sessions string
	flags    string
	log      utils.Logger
}

// NewCrashMonitor creates a monitor rooted at dataDir.
func NewCrashMonitor(dataDir string, profileStore *store.ProfileStore) (*CrashMonitor, error) {
	sessions := filepath.Join(dataDir, sessionsDir)
	flags := filepath.Join(dataDir, flagsDir)
	for _, dir := range []string{sessions, flags} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &CrashMonitor{
		store:    profileStore,
		sessions: sessions,
		flags:    flags,
		log:      utils.GetGlobalLogger().WithField("component", "monitor"),
	}, nil
}

// ShouldUseSafeNextRun reports whether the one-shot Safe fallback is armed
// for a game. The caller that consumes it must clear it explicitly so it
// fires exactly once.
func (m *CrashMonitor) ShouldUseSafeNextRun(gameID string) bool {
	_, err := os.Stat(m.safeFlagPath(gameID))
	return err == nil
}

// SetUseSafeNextRun arms the one-shot Safe fallback for a game.
func (m *CrashMonitor) SetUseSafeNextRun(gameID string) {
	if err := os.WriteFile(m.safeFlagPath(gameID), []byte("1"), 0644); err != nil {
		m.log.Warn("failed to arm safe fallback for %s: %v", gameID, err)
	}
}

// ClearUseSafeNextRun consumes the one-shot Safe fallback for a game.
func (m *CrashMonitor) ClearUseSafeNextRun(gameID string) {
	if err := os.Remove(m.safeFlagPath(gameID)); err != nil && !os.IsNotExist(err) {
		m.log.Warn("failed to clear safe fallback for %s: %v", gameID, err)
	}
}

func (m *CrashMonitor) safeFlagPath(gameID string) string {
	return filepath.Join(m.flags, safeFlagName+gameID)
}

// RecordSessionEnd persists an immutable session record and applies the
// tier transition it implies. Call when the game process exits.
func (m *CrashMonitor) RecordSessionEnd(gameID, profileID string, startedAt int64, exitReason string) {
	endedAt := time.Now().UnixMilli()
	record := models.NewSessionRecord(gameID, profileID, startedAt, endedAt, exitReason)

	name := fmt.Sprintf("%s_%d.json", gameID, endedAt)
	if data, err := json.MarshalIndent(record, "", "  "); err == nil {
		if err := os.WriteFile(filepath.Join(m.sessions, name), data, 0644); err != nil {
			m.log.Warn("failed to write session record %s: %v", name, err)
		}
	}

	state, _ := m.store.LoadGameState(gameID)
	if state == nil {
		return
	}
	wasCandidate := profileID != "" && profileID == state.CandidateProfileID

	if record.StabilityPass() {
		if wasCandidate {
			m.store.SetLkg(gameID, profileID)
			m.store.SetCandidate(gameID, "")
			m.log.Info("promoted %s to LKG for %s after %ds", profileID, gameID, record.RuntimeSeconds)
		}
		return
	}

	if record.QuickCrash() {
		m.SetUseSafeNextRun(gameID)
		if wasCandidate {
			m.store.RollbackToPreviousLkg(gameID)
			m.store.SetCandidate(gameID, "")
			m.log.Info("rolled back candidate %s for %s after quick crash", profileID, gameID)
		}
	}
}

// ListSessions returns the recorded sessions for a game, oldest first.
func (m *CrashMonitor) ListSessions(gameID string) []*models.SessionRecord {
	entries, err := os.ReadDir(m.sessions)
	if err != nil {
		return nil
	}
	var records []*models.SessionRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		// Filenames are <gameID>_<endedAtMillis>.json and game ids may
		// themselves contain underscores, so split at the last one and
		// require an exact id match.
		base := strings.TrimSuffix(name, ".json")
		sep := strings.LastIndex(base, "_")
		if sep < 0 || base[:sep] != gameID {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.sessions, name))
		if err != nil {
			continue
		}
		var r models.SessionRecord
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		records = append(records, &r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EndedAt < records[j].EndedAt })
	return records
}
