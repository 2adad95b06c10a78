package pack

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/loguefx/Steam-APK/internal/errors"
	"github.com/loguefx/Steam-APK/pkg/models"
	"github.com/loguefx/Steam-APK/pkg/store"
	"github.com/loguefx/Steam-APK/pkg/utils"
)

const (
	cacheDir     = "pack_cache"
	manifestFile = "manifest.json"
	rulesFile    = "rules.json"
	profilesFile = "profiles.json"
	notesFile    = "notes.json"

	// DefaultMaxCachedPacks bounds the pack cache after each download.
	DefaultMaxCachedPacks = 5
)

// Manager downloads configuration packs, verifies their checksum, caches
// them locally and prunes the cache to the newest N packs. Packs are only
// ever applied as Candidates; promotion requires a stable run.
//
// Network calls are blocking with a bounded timeout and never retry; a
// failed fetch is surfaced as "no pack available". Call off any
// latency-sensitive path.
type Manager struct {
	cacheRoot string
	client    *http.Client
	maxCached int
	log       utils.Logger
}

// NewManager creates a pack manager rooted at dataDir/pack_cache.
func NewManager(dataDir string, timeout time.Duration, maxCached int) (*Manager, error) {
	root := filepath.Join(dataDir, cacheDir)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, apperrors.IO(err, "PACK_INIT", "failed to create pack cache directory")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxCached <= 0 {
		maxCached = DefaultMaxCachedPacks
	}
	return &Manager{
		cacheRoot: root,
		client:    &http.Client{Timeout: timeout},
		maxCached: maxCached,
		log:       utils.GetGlobalLogger().WithField("component", "pack"),
	}, nil
}

// CacheRoot returns the pack cache directory.
func (m *Manager) CacheRoot() string { return m.cacheRoot }

// ListCachedPackIDs returns the cached pack ids, newest first by the
// manifest's created_at.
func (m *Manager) ListCachedPackIDs() []string {
	entries, err := os.ReadDir(m.cacheRoot)
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return m.packCreatedAt(ids[i]) > m.packCreatedAt(ids[j])
	})
	return ids
}

func (m *Manager) packCreatedAt(packID string) int64 {
	data, err := os.ReadFile(filepath.Join(m.cacheRoot, packID, manifestFile))
	if err != nil {
		return 0
	}
	var manifest models.PackManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return 0
	}
	return manifest.CreatedAt
}

// DownloadPack fetches manifest.json (required) plus rules.json and
// profiles.json (optional) from baseURL, replaces any cache entry for the
// same pack id, and prunes the cache. Returns the pack id.
func (m *Manager) DownloadPack(baseURL string) (string, error) {
	if baseURL == "" {
		return "", apperrors.New(apperrors.KindNetwork, "PACK_URL", "no pack base URL configured")
	}
	base := strings.TrimSuffix(baseURL, "/") + "/"

	manifestData, err := m.fetch(base + manifestFile)
	if err != nil {
		return "", err
	}
	var manifest models.PackManifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return "", apperrors.Parse(err, "PACK_MANIFEST", "malformed pack manifest")
	}
	packID := manifest.PackID
	if packID == "" {
		packID = fmt.Sprintf("pack_%d", time.Now().UnixMilli())
	}

	// Delete-then-recreate makes repeated downloads of one pack idempotent.
	dir := filepath.Join(m.cacheRoot, packID)
	if err := os.RemoveAll(dir); err != nil {
		return "", apperrors.IO(err, "PACK_REPLACE", "failed to replace cached pack")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.IO(err, "PACK_MKDIR", "failed to create pack directory")
	}

	// The checksum covers the raw manifest bytes, so cache them untouched.
	if err := os.WriteFile(filepath.Join(dir, manifestFile), manifestData, 0644); err != nil {
		return "", apperrors.IO(err, "PACK_WRITE", "failed to write pack manifest")
	}
	for _, name := range []string{rulesFile, profilesFile} {
		data, err := m.fetch(base + name)
		if err != nil {
			m.log.Debug("pack %s: %s unavailable: %v", packID, name, err)
			continue
		}
		if !json.Valid(data) {
			m.log.Warn("pack %s: discarding malformed %s", packID, name)
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return "", apperrors.IO(err, "PACK_WRITE", "failed to write "+name)
		}
	}

	m.PruneToMaxPacks(m.maxCached)
	return packID, nil
}

func (m *Manager) fetch(url string) ([]byte, error) {
	resp, err := m.client.Get(url)
	if err != nil {
		return nil, apperrors.Network(err, "PACK_FETCH", "failed to fetch "+url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Network(nil, "PACK_STATUS", fmt.Sprintf("HTTP %d for %s", resp.StatusCode, url))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Network(err, "PACK_READ", "failed to read response for "+url)
	}
	return data, nil
}

// LoadCachedPack reads a cached pack from disk. A missing or unparsable
// manifest reports absence; missing rules or profiles files are treated as
// empty collections.
func (m *Manager) LoadCachedPack(packID string) (*models.ConfigPack, error) {
	dir := filepath.Join(m.cacheRoot, packID)
	manifestData, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, apperrors.NotFound("PACK_MISSING", "pack "+packID+" not cached")
	}
	var manifest models.PackManifest
	if err := json.Unmarshal(manifestData, &manifest); err != nil {
		return nil, apperrors.Parse(err, "PACK_MANIFEST", "malformed manifest for pack "+packID)
	}

	var rules models.RulesFile
	if data, err := os.ReadFile(filepath.Join(dir, rulesFile)); err == nil {
		if err := json.Unmarshal(data, &rules); err != nil {
			m.log.Warn("pack %s: ignoring malformed rules: %v", packID, err)
		}
	}

	profiles := make(map[string]*models.Profile)
	if data, err := os.ReadFile(filepath.Join(dir, profilesFile)); err == nil {
		if parsed, err := models.ParsePackProfiles(data); err == nil {
			profiles = parsed
		} else {
			m.log.Warn("pack %s: ignoring malformed profiles: %v", packID, err)
		}
	}

	notes := ""
	if data, err := os.ReadFile(filepath.Join(dir, notesFile)); err == nil {
		notes = string(data)
	}

	return models.NewConfigPack(&manifest, rules.Matches, profiles, notes), nil
}

// VerifyPackChecksum recomputes SHA-256 over the cached manifest bytes and
// compares case-insensitively with the declared checksum. A pack without a
// checksum is implicitly valid.
func (m *Manager) VerifyPackChecksum(packID string) (bool, error) {
	p, err := m.LoadCachedPack(packID)
	if err != nil {
		return false, err
	}
	if p.ChecksumSHA256 == "" {
		return true, nil
	}
	data, err := os.ReadFile(filepath.Join(m.cacheRoot, packID, manifestFile))
	if err != nil {
		return false, apperrors.IO(err, "PACK_READ", "failed to read cached manifest")
	}
	sum := sha256.Sum256(data)
	return strings.EqualFold(p.ChecksumSHA256, hex.EncodeToString(sum[:])), nil
}

// PruneToMaxPacks keeps only the newest max packs by created_at, deleting
// older cache directories entirely.
func (m *Manager) PruneToMaxPacks(max int) {
	ids := m.ListCachedPackIDs()
	for i := max; i < len(ids); i++ {
		if err := os.RemoveAll(filepath.Join(m.cacheRoot, ids[i])); err != nil {
			m.log.Warn("failed to prune pack %s: %v", ids[i], err)
		}
	}
}

// ApplyPackAsCandidateForAllGames runs the rule matcher for every known
// game and stages matched profiles as Candidates under a pack-namespaced
// profile id (user-local profile ids are never overwritten). Games are
// processed concurrently; each game's state lives in its own file, so
// workers never contend on a write. Returns the number of games updated.
//
// This batch path supplies no executable hash, so hash-scoped rules never
// match from here; use ApplyPackAsCandidateForGame for hash-targeted
// updates.
func (m *Manager) ApplyPackAsCandidateForAllGames(ctx context.Context, p *models.ConfigPack, profileStore *store.ProfileStore, device *models.DeviceInfo) int {
	if p == nil || profileStore == nil {
		return 0
	}
	return m.fanOutApply(ctx, profileStore.ListGameIDs(), func(gameID string) bool {
		return m.ApplyPackAsCandidateForGame(p, gameID, "", profileStore, device)
	})
}

// fanOutApply runs the per-game apply across a bounded set of workers and
// returns how many games received a candidate. Cancelling ctx stops
// feeding unprocessed game ids; games already picked up still finish.
func (m *Manager) fanOutApply(ctx context.Context, gameIDs []string, apply func(gameID string) bool) int {
	if len(gameIDs) == 0 {
		return 0
	}

	workers := runtime.NumCPU()
	if workers > len(gameIDs) {
		workers = len(gameIDs)
	}

	idCh := make(chan string)
	var applied atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameID := range idCh {
				if apply(gameID) {
					applied.Add(1)
				}
			}
		}()
	}

	for _, gameID := range gameIDs {
		select {
		case <-ctx.Done():
			close(idCh)
			wg.Wait()
			return int(applied.Load())
		case idCh <- gameID:
		}
	}
	close(idCh)
	wg.Wait()
	return int(applied.Load())
}

// ApplyPackAsCandidateForGame stages the matched pack profile as the
// Candidate for one game. Returns whether a candidate was set.
func (m *Manager) ApplyPackAsCandidateForGame(p *models.ConfigPack, gameID, exeSHA256 string, profileStore *store.ProfileStore, device *models.DeviceInfo) bool {
	profileID, ok := MatchProfileID(p, gameID, exeSHA256, device)
	if !ok {
		return false
	}
	src, ok := p.Profiles[profileID]
	if !ok {
		return false
	}
	storedID := fmt.Sprintf("profile_pack_%s_%s", p.PackID, src.ID)
	staged := &models.Profile{
		ID:          storedID,
		Name:        src.Name + " (Candidate)",
		Source:      models.SourcePack,
		Components:  src.Components,
		Settings:    src.Settings,
		Constraints: src.Constraints,
	}
	if err := profileStore.SaveProfile(staged); err != nil {
		m.log.Warn("failed to store pack profile %s: %v", storedID, err)
		return false
	}
	// A game targeted by id may never have launched; seed its state so the
	// candidate write has somewhere to land.
	profileStore.GetOrCreateGameState(gameID, models.DefaultSafeProfileID)
	profileStore.SetCandidate(gameID, storedID)
	return true
}
