package launch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/store"
)

func newTestMonitor(t *testing.T) (*CrashMonitor, *store.ProfileStore) {
	t.Helper()
	dataDir := t.TempDir()
	profileStore, err := store.NewProfileStore(dataDir)
	require.NoError(t, err)
	monitor, err := NewCrashMonitor(dataDir, profileStore)
	require.NoError(t, err)
	return monitor, profileStore
}

// startedAgo returns an epoch-millis start timestamp the given number of
// seconds in the past.
func startedAgo(seconds int64) int64 {
	return time.Now().UnixMilli() - seconds*1000
}

func TestSafeFlagLifecycle(t *testing.T) {
	m, _ := newTestMonitor(t)

	assert.False(t, m.ShouldUseSafeNextRun("g1"))
	m.SetUseSafeNextRun("g1")
	assert.True(t, m.ShouldUseSafeNextRun("g1"))
	assert.False(t, m.ShouldUseSafeNextRun("g2"), "flags are per game")

	m.ClearUseSafeNextRun("g1")
	assert.False(t, m.ShouldUseSafeNextRun("g1"))

	// Clearing an unset flag is harmless.
	m.ClearUseSafeNextRun("g1")
}

func TestStabilityPassPromotesCandidate(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetCandidate("g1", "p_cand")

	m.RecordSessionEnd("g1", "p_cand", startedAgo(301), models.ExitNormal)

	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Equal(t, "p_cand", state.LkgProfileID)
	assert.Empty(t, state.CandidateProfileID, "promotion consumes the candidate")
	assert.Equal(t, "p_cand", state.History[0])
}

func TestStabilityPassOnNonCandidateOnlyLogs(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetLkg("g1", "p_lkg")

	m.RecordSessionEnd("g1", "p_lkg", startedAgo(400), models.ExitNormal)

	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Equal(t, "p_lkg", state.LkgProfileID)
	assert.Equal(t, []string{"p_lkg"}, state.History, "no duplicate history entry")
}

func TestQuickCrashRollsBackCandidate(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetLkg("g1", "p_old")
	s.SetCandidate("g1", "p_cand")

	m.RecordSessionEnd("g1", "p_cand", startedAgo(10), models.ExitCrash)

	assert.True(t, m.ShouldUseSafeNextRun("g1"), "quick crash arms the one-shot Safe flag")
	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Empty(t, state.CandidateProfileID)
	assert.Equal(t, models.DefaultSafeProfileID, state.LkgProfileID,
		"single-entry history rolls back to Safe")
}

func TestQuickCrashOnNonCandidateArmsFlagOnly(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetLkg("g1", "p_lkg")

	m.RecordSessionEnd("g1", "p_lkg", startedAgo(5), models.ExitCrash)

	assert.True(t, m.ShouldUseSafeNextRun("g1"))
	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Equal(t, "p_lkg", state.LkgProfileID, "LKG is not rolled back for non-candidate crashes")
}

func TestCrashAfterStabilityDoesNotRollBack(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetCandidate("g1", "p_cand")

	// Stability is judged on runtime, not exit reason: a crash after the
	// stability threshold still promotes.
	m.RecordSessionEnd("g1", "p_cand", startedAgo(400), models.ExitCrash)

	assert.False(t, m.ShouldUseSafeNextRun("g1"))
	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Equal(t, "p_cand", state.LkgProfileID)
}

func TestMidWindowCrashChangesNothing(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)
	s.SetCandidate("g1", "p_cand")

	// Crash between the quick-crash and stability thresholds: recorded,
	// but no transition.
	m.RecordSessionEnd("g1", "p_cand", startedAgo(120), models.ExitCrash)

	assert.False(t, m.ShouldUseSafeNextRun("g1"))
	state, err := s.LoadGameState("g1")
	require.NoError(t, err)
	assert.Equal(t, "p_cand", state.CandidateProfileID, "candidate stays staged")
	assert.Equal(t, models.DefaultSafeProfileID, state.LkgProfileID)
}

func TestRecordSessionEndWritesRecord(t *testing.T) {
	m, s := newTestMonitor(t)
	s.GetOrCreateGameState("g1", models.DefaultSafeProfileID)

	m.RecordSessionEnd("g1", "p1", startedAgo(42), models.ExitNormal)
	time.Sleep(5 * time.Millisecond) // records are named by end timestamp
	m.RecordSessionEnd("g1", "p1", startedAgo(7), models.ExitCrash)
	m.RecordSessionEnd("g2", "p2", startedAgo(10), models.ExitNormal)

	sessions := m.ListSessions("g1")
	require.Len(t, sessions, 2)
	assert.Equal(t, models.ExitNormal, sessions[0].ExitReason)
	assert.InDelta(t, 42, sessions[0].RuntimeSeconds, 1)
	assert.Equal(t, models.ExitCrash, sessions[1].ExitReason)
}

func TestListSessionsWithUnderscoredGameIDs(t *testing.T) {
	m, _ := newTestMonitor(t)

	// Game ids embed shortcut filenames, so one id can be a prefix of
	// another up to an underscore.
	m.RecordSessionEnd("c1_my", "p1", startedAgo(10), models.ExitNormal)
	m.RecordSessionEnd("c1_my_game.exe", "p2", startedAgo(20), models.ExitCrash)

	short := m.ListSessions("c1_my")
	require.Len(t, short, 1)
	assert.Equal(t, "p1", short[0].ProfileID)

	long := m.ListSessions("c1_my_game.exe")
	require.Len(t, long, 1)
	assert.Equal(t, "p2", long[0].ProfileID)

	assert.Empty(t, m.ListSessions("c1"))
}

func TestRecordSessionEndForUnknownGame(t *testing.T) {
	m, _ := newTestMonitor(t)

	// No state on disk: the record is written, no transition is attempted.
	m.RecordSessionEnd("ghost", "p1", startedAgo(301), models.ExitNormal)
	assert.Len(t, m.ListSessions("ghost"), 1)
}
