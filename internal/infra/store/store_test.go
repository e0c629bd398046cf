package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bimalism/portal/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "portal_data.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestReadFreshStore(t *testing.T) {
	s := newTestStore(t)

	rec := s.Read()
	if rec.Coins != 0 || rec.StudyTime != 0 {
		t.Errorf("fresh store = %+v, want zero record", rec)
	}
	if rec.LastUpdated == "" {
		t.Error("fresh record should carry a timestamp")
	}

	// Read must not create the file
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("Read should not write the backing file")
	}
}

func TestReadIdempotent(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.RecordStudySeconds(3600); err != nil {
		t.Fatalf("record: %v", err)
	}

	a := s.Read()
	b := s.Read()
	if a != b {
		t.Errorf("consecutive reads differ: %+v vs %+v", a, b)
	}
}

func TestRecordStudySecondsAccumulates(t *testing.T) {
	s := newTestStore(t)

	rec, added, err := s.RecordStudySeconds(3600)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if added != 3600 {
		t.Errorf("added = %d, want 3600", added)
	}
	if rec.Coins != 0 || rec.StudyTime != 3600 {
		t.Errorf("after 3600s: coins=%d study=%d, want 0/3600", rec.Coins, rec.StudyTime)
	}

	rec, _, err = s.RecordStudySeconds(3600)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Coins != 1 || rec.StudyTime != 7200 {
		t.Errorf("after 7200s: coins=%d study=%d, want 1/7200", rec.Coins, rec.StudyTime)
	}
}

func TestRecordStudySecondsBoundaries(t *testing.T) {
	tests := []struct {
		seconds   int64
		wantCoins int64
	}{
		{7199, 0},
		{7200, 1},
		{14400, 2},
	}

	for _, tt := range tests {
		s := newTestStore(t)
		rec, _, err := s.RecordStudySeconds(tt.seconds)
		if err != nil {
			t.Fatalf("record(%d): %v", tt.seconds, err)
		}
		if rec.Coins != tt.wantCoins {
			t.Errorf("record(%d): coins = %d, want %d", tt.seconds, rec.Coins, tt.wantCoins)
		}
	}
}

func TestCreditCoinsFreshStore(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.CreditCoins(5)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if rec.Coins != 5 {
		t.Errorf("coins = %d, want 5", rec.Coins)
	}
	if rec.StudyTime != 0 {
		t.Errorf("study time = %d, want 0 (credit must not touch it)", rec.StudyTime)
	}
}

func TestCreditSurvivesRecompute(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreditCoins(5); err != nil {
		t.Fatalf("credit: %v", err)
	}
	rec, _, err := s.RecordStudySeconds(7200)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// Earned 1 + credited 5: the recompute path must not discard the bonus.
	if rec.Coins != 6 {
		t.Errorf("coins = %d, want 6 (1 earned + 5 bonus)", rec.Coins)
	}
	if rec.BonusCoins != 5 {
		t.Errorf("bonus = %d, want 5", rec.BonusCoins)
	}
}

func TestNegativeInputsRejected(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreditCoins(-1); !errors.Is(err, domain.ErrNegativeAmount) {
		t.Errorf("CreditCoins(-1) error = %v, want ErrNegativeAmount", err)
	}
	if _, _, err := s.RecordStudySeconds(-10); !errors.Is(err, domain.ErrNegativeSeconds) {
		t.Errorf("RecordStudySeconds(-10) error = %v, want ErrNegativeSeconds", err)
	}

	// Rejected updates must not write anything
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("rejected update wrote the backing file")
	}
}

func TestRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal_data.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.CreditCoins(2); err != nil {
		t.Fatalf("credit: %v", err)
	}
	want, _, err := s.RecordStudySeconds(9000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// Simulate process restart
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, status := reopened.Load()
	if status != LoadOK {
		t.Fatalf("status = %v, want LoadOK", status)
	}
	if got != want {
		t.Errorf("reopened record = %+v, want %+v", got, want)
	}
}

func TestCorruptFileRepairsToZero(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.RecordStudySeconds(7200); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	rec, status := s.Load()
	if status != LoadCorrupt {
		t.Errorf("status = %v, want LoadCorrupt", status)
	}
	if rec.Coins != 0 || rec.StudyTime != 0 {
		t.Errorf("corrupt load = %+v, want zero record", rec)
	}
}

func TestMissingFileStatus(t *testing.T) {
	s := newTestStore(t)
	if _, status := s.Load(); status != LoadMissing {
		t.Errorf("status = %v, want LoadMissing", status)
	}
}

func TestLegacyFileWithoutBonusPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal_data.json")
	legacy := `{"coins": 7, "study_time": 14400, "last_updated": "2024-01-01T00:00:00Z"}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, status := s.Load()
	if status != LoadOK {
		t.Fatalf("status = %v, want LoadOK", status)
	}

	// 14400s earns 2; the other 5 must be treated as previously credited.
	if rec.Coins != 7 || rec.BonusCoins != 5 {
		t.Errorf("legacy load: coins=%d bonus=%d, want 7/5", rec.Coins, rec.BonusCoins)
	}

	// A later recompute keeps the total stable.
	rec2, _, err := s.RecordStudySeconds(0)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec2.Coins != 7 {
		t.Errorf("coins after recompute = %d, want 7", rec2.Coins)
	}
}

func TestPersistedLayout(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.RecordStudySeconds(3600); err != nil {
		t.Fatalf("record: %v", err)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("backing file is not valid JSON: %v", err)
	}
	for _, key := range []string{"coins", "study_time", "last_updated"} {
		if _, ok := m[key]; !ok {
			t.Errorf("backing file missing key %q", key)
		}
	}
	if ts, _ := m["last_updated"].(string); !strings.Contains(ts, "T") {
		t.Errorf("last_updated = %v, want ISO-8601 string", m["last_updated"])
	}
}

func TestNoTempFileLitter(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.CreditCoins(1); err != nil {
			t.Fatalf("credit: %v", err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the data file, found %v", names)
	}
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	s := newTestStore(t)

	const workers = 8
	const perWorker = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if _, _, err := s.RecordStudySeconds(60); err != nil {
					t.Errorf("record: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	rec := s.Read()
	want := int64(workers * perWorker * 60)
	if rec.StudyTime != want {
		t.Errorf("study time = %d, want %d (lost updates)", rec.StudyTime, want)
	}
}
