package models

// Session thresholds in seconds.
const (
	LaunchSuccessSeconds = 20
	StabilityPassSeconds = 300
	QuickCrashSeconds    = 60
)

// Exit reasons.
const (
	ExitNormal  = "normal"
	ExitCrash   = "crash"
	ExitANR     = "anr"
	ExitUnknown = "unknown"
)

// SessionRecord is one append-only log entry describing a finished run.
// Never mutated after creation.
type SessionRecord struct {
	GameID         string `json:"game_id"`
	ProfileID      string `json:"profile_id"`
	StartedAt      int64  `json:"started_at"`
	EndedAt        int64  `json:"ended_at"`
	ExitReason     string `json:"exit_reason"`
	RuntimeSeconds int    `json:"runtime_seconds"`
}

// NewSessionRecord builds a record from epoch-millis timestamps, deriving
// the runtime.
func NewSessionRecord(gameID, profileID string, startedAt, endedAt int64, exitReason string) *SessionRecord {
	if exitReason == "" {
		exitReason = ExitUnknown
	}
	return &SessionRecord{
		GameID:         gameID,
		ProfileID:      profileID,
		StartedAt:      startedAt,
		EndedAt:        endedAt,
		ExitReason:     exitReason,
		RuntimeSeconds: int((endedAt - startedAt) / 1000),
	}
}

// LaunchSuccess reports whether the session ran long enough to count as a
// successful launch.
func (r *SessionRecord) LaunchSuccess() bool {
	return r.RuntimeSeconds >= LaunchSuccessSeconds
}

// StabilityPass reports whether the session ran long enough to prove the
// profile stable.
func (r *SessionRecord) StabilityPass() bool {
	return r.RuntimeSeconds >= StabilityPassSeconds
}

// QuickCrash reports whether the session ended abnormally before the
// quick-crash threshold.
func (r *SessionRecord) QuickCrash() bool {
	return r.RuntimeSeconds < QuickCrashSeconds && r.ExitReason != ExitNormal
}

// ExitReasonFromCode maps a process exit code to an exit reason:
// 0 is normal, 137/143 (kill/terminate) are treated as ANR, anything
// else is a crash.
func ExitReasonFromCode(exitCode int) string {
	switch exitCode {
	case 0:
		return ExitNormal
	case 137, 143:
		return ExitANR
	default:
		return ExitCrash
	}
}
