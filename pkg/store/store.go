package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/utils"
)

const (
	profilesDir     = "profiles"
	gameStatePrefix = "game_"
	profilePrefix   = "profile_"
)

// ProfileStore persists profiles and per-game tier state (Safe, Candidate,
// LKG) as one small JSON file each. It is the single source of truth for
// tier pointers and rollback history; other components mutate state only
// through it.
//
// Loads report absence for missing or corrupt files; mutators are
// best-effort durable (a lost write loses one update, never corrupts the
// remaining state).
type ProfileStore struct {
	root string
	log  utils.Logger
}

// NewProfileStore creates a store rooted at dataDir/profiles.
func NewProfileStore(dataDir string) (*ProfileStore, error) {
	root := filepath.Join(dataDir, profilesDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, apperrors.IO(err, "STORE_INIT", "failed to create profiles directory")
	}
	return &ProfileStore{
		root: root,
		log:  utils.GetGlobalLogger().WithField("component", "store"),
	}, nil
}

// EnsureDefaultSafeProfile writes the built-in Safe baseline if it is not
// on disk yet. Idempotent.
func (s *ProfileStore) EnsureDefaultSafeProfile() {
	if p, _ := s.LoadProfile(models.DefaultSafeProfileID); p != nil {
		return
	}
	if err := s.SaveProfile(models.DefaultSafeProfile()); err != nil {
		s.log.Warn("failed to write default Safe profile: %v", err)
	}
}

// GetOrCreateGameState returns the stored state for gameID, creating and
// persisting the initial state (lkg = safe = defaultSafeProfileID) on
// first resolution.
func (s *ProfileStore) GetOrCreateGameState(gameID, defaultSafeProfileID string) *models.GameProfileState {
	s.EnsureDefaultSafeProfile()
	if state, _ := s.LoadGameState(gameID); state != nil {
		return state
	}
	state := models.NewGameProfileState(gameID, defaultSafeProfileID)
	if err := s.SaveGameState(state); err != nil {
		s.log.Warn("failed to persist new state for %s: %v", gameID, err)
	}
	return state
}

// ListGameIDs enumerates all game ids with stored state, for pack-wide
// candidate application.
func (s *ProfileStore) ListGameIDs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, gameStatePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(name, gameStatePrefix), ".json"))
	}
	return out
}

// ListProfileIDs enumerates all stored profile ids.
func (s *ProfileStore) ListProfileIDs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, profilePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(name, profilePrefix), ".json"))
	}
	sort.Strings(out)
	return out
}

// LoadProfile loads a profile by id. The returned error distinguishes
// NOT_FOUND from PARSE so callers can log them apart, though both mean
// "absent" for resolution purposes.
func (s *ProfileStore) LoadProfile(profileID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.readJSON(profilePrefix+profileID+".json", &p); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// SaveProfile persists a profile under its id. Profiles are stored
// independently of game state so many games can reference one id.
func (s *ProfileStore) SaveProfile(p *models.Profile) error {
	return s.writeJSON(profilePrefix+p.ID+".json", p)
}

// LoadGameState loads per-game tier state.
func (s *ProfileStore) LoadGameState(gameID string) (*models.GameProfileState, error) {
	var state models.GameProfileState
	if err := s.readJSON(gameStatePrefix+gameID+".json", &state); err != nil {
		return nil, err
	}
	if state.History == nil {
		state.History = []string{}
	}
	return &state, nil
}

// SaveGameState persists per-game tier state.
func (s *ProfileStore) SaveGameState(state *models.GameProfileState) error {
	return s.writeJSON(gameStatePrefix+state.GameID+".json", state)
}

// SetLkg updates the LKG pointer for a game and pushes the id onto the
// history head (no duplicate consecutive entries, bounded to MaxHistory).
func (s *ProfileStore) SetLkg(gameID, profileID string) {
	s.mutate(gameID, func(state *models.GameProfileState) {
		state.PushHistory(profileID)
		state.LkgProfileID = profileID
	})
}

// SetCandidate stages (or clears, with "") the Candidate for a game.
func (s *ProfileStore) SetCandidate(gameID, profileID string) {
	s.mutate(gameID, func(state *models.GameProfileState) {
		state.CandidateProfileID = profileID
	})
}

// RollbackToPreviousLkg drops the current history head and points LKG at
// the new head, or back at Safe when no previous entry exists. Always
// clears the Candidate.
func (s *ProfileStore) RollbackToPreviousLkg(gameID string) {
	s.mutate(gameID, func(state *models.GameProfileState) {
		if len(state.History) > 1 {
			state.History = state.History[1:]
			state.LkgProfileID = state.History[0]
		} else {
			state.LkgProfileID = state.SafeProfileID
		}
		state.CandidateProfileID = ""
	})
}

// SetPinned locks (or unlocks) resolution to LKG for a game.
func (s *ProfileStore) SetPinned(gameID string, pinned bool) {
	s.mutate(gameID, func(state *models.GameProfileState) {
		state.Pinned = pinned
	})
}

// mutate runs a read-modify-write cycle on one game's state. Missing state
// makes the mutation a no-op.
func (s *ProfileStore) mutate(gameID string, fn func(*models.GameProfileState)) {
	state, err := s.LoadGameState(gameID)
	if state == nil {
		if err != nil && !apperrors.Absence(err) {
			s.log.Warn("state load failed for %s: %v", gameID, err)
		}
		return
	}
	fn(state)
	if err := s.SaveGameState(state); err != nil {
		s.log.Warn("state write failed for %s: %v", gameID, err)
	}
}

func (s *ProfileStore) readJSON(name string, target interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("STORE_MISSING", name+" not found")
		}
		return apperrors.IO(err, "STORE_READ", "failed to read "+name)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return apperrors.Parse(err, "STORE_PARSE", "malformed "+name)
	}
	return nil
}

func (s *ProfileStore) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Parse(err, "STORE_ENCODE", "failed to encode "+name)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0644); err != nil {
		return apperrors.IO(err, "STORE_WRITE", "failed to write "+name)
	}
	return nil
}
