package models

// MaxHistory bounds the per-game LKG history.
const MaxHistory = 10

// GameProfileState tracks the three configuration tiers for one game:
// Safe (baseline), Candidate (staged trial), LKG (last known good), plus
// pinning and a bounded most-recent-first history of LKG ids.
type GameProfileState struct {
	GameID             string   `json:"game_id"`
	SafeProfileID      string   `json:"safe"`
	CandidateProfileID string   `json:"candidate"`
	LkgProfileID       string   `json:"lkg"`
	Pinned             bool     `json:"pinned"`
	History            []string `json:"history"`
}

// NewGameProfileState creates the initial state for a game: LKG starts at
// the Safe baseline, no Candidate, not pinned.
func NewGameProfileState(gameID, safeProfileID string) *GameProfileState {
	return &GameProfileState{
		GameID:        gameID,
		SafeProfileID: safeProfileID,
		LkgProfileID:  safeProfileID,
		History:       []string{},
	}
}

// PushHistory prepends profileID to the history unless it already equals the
// current head, truncating to MaxHistory entries.
func (s *GameProfileState) PushHistory(profileID string) {
	if len(s.History) > 0 && s.History[0] == profileID {
		return
	}
	s.History = append([]string{profileID}, s.History...)
	if len(s.History) > MaxHistory {
		s.History = s.History[:MaxHistory]
	}
}
