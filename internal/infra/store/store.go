// Package store persists the single accounting record as one JSON file.
//
// Every update is a full read-modify-write cycle: load the file, mutate the
// record, rewrite the whole file through a temp file and atomic rename. A
// single mutex serializes updates so interleaved cycles cannot lose writes.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bimalism/portal/internal/domain"
)

// LoadStatus reports how the backing file was read.
type LoadStatus int

const (
	// LoadOK means the file existed and parsed cleanly.
	LoadOK LoadStatus = iota
	// LoadMissing means no backing file existed yet (normal on first run).
	LoadMissing
	// LoadCorrupt means the file existed but did not parse; its contents
	// were discarded and a zero record substituted.
	LoadCorrupt
)

// String returns the status name for logs.
func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Store owns the durable accounting record. Construct one per process with
// an injected file path; callers hold the handle rather than relying on
// ambient file-system state.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time // stubbed in tests
}

// Open creates a store backed by the given file path, creating the parent
// directory if needed. The file itself is created lazily on first update.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Store{path: path, now: time.Now}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// ─── Read Operations ────────────────────────────────────────────────────────

// Read returns the current record. A missing or corrupt backing file is
// silently repaired to a fresh zero record; Read never fails and never
// writes.
func (s *Store) Read() domain.Record {
	rec, _ := s.Load()
	return rec
}

// Load returns the current record together with a typed load status so the
// caller can surface silent repairs instead of losing data invisibly.
func (s *Store) Load() (domain.Record, LoadStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// ─── Update Operations ──────────────────────────────────────────────────────

// CreditCoins adds amount to the bonus coin pool, recomputes the reported
// total, and persists. Recorded study time is untouched.
func (s *Store) CreditCoins(amount int64) (domain.Record, error) {
	if amount < 0 {
		return domain.Record{}, domain.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load()
	rec.BonusCoins += amount
	rec.Recompute()
	rec.Touch(s.now())

	if err := s.save(rec); err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// RecordStudySeconds adds elapsed study seconds, recomputes the coin total,
// and persists. It returns the updated record and the seconds actually
// added for caller bookkeeping.
func (s *Store) RecordStudySeconds(seconds int64) (domain.Record, int64, error) {
	if seconds < 0 {
		return domain.Record{}, 0, domain.ErrNegativeSeconds
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load()
	rec.StudyTime += seconds
	rec.Recompute()
	rec.Touch(s.now())

	if err := s.save(rec); err != nil {
		return domain.Record{}, 0, err
	}
	return rec, seconds, nil
}

// ─── File Handling ──────────────────────────────────────────────────────────

// fileRecord is the on-disk envelope. BonusCoins is a pointer so files
// written before the bonus pool existed can be told apart from an explicit
// zero and migrated without losing credited coins.
type fileRecord struct {
	Coins       int64  `json:"coins"`
	StudyTime   int64  `json:"study_time"`
	BonusCoins  *int64 `json:"bonus_coins,omitempty"`
	LastUpdated string `json:"last_updated"`
}

// load reads the backing file. Callers must hold s.mu.
func (s *Store) load() (domain.Record, LoadStatus) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.ZeroRecord(s.now()), LoadMissing
	}

	var fr fileRecord
	if err := json.Unmarshal(raw, &fr); err != nil {
		return domain.ZeroRecord(s.now()), LoadCorrupt
	}

	rec := domain.Record{
		Coins:       fr.Coins,
		StudyTime:   fr.StudyTime,
		LastUpdated: fr.LastUpdated,
	}
	if fr.BonusCoins != nil {
		rec.BonusCoins = *fr.BonusCoins
	} else {
		// Legacy file: whatever exceeds the earned total was credited.
		if extra := fr.Coins - domain.EarnedCoins(fr.StudyTime); extra > 0 {
			rec.BonusCoins = extra
		}
	}
	if rec.LastUpdated == "" {
		rec.Touch(s.now())
	}
	return rec, LoadOK
}

// save rewrites the backing file in full via temp file + atomic rename, so
// a crash mid-write can never leave a half-written record behind. Callers
// must hold s.mu.
func (s *Store) save(rec domain.Record) error {
	fr := fileRecord{
		Coins:       rec.Coins,
		StudyTime:   rec.StudyTime,
		BonusCoins:  &rec.BonusCoins,
		LastUpdated: rec.LastUpdated,
	}
	data, err := json.MarshalIndent(fr, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".portal-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return nil
}
