// Package accounting coordinates the durable record, the session ledger,
// and metrics. The HTTP façade and the CLI both go through this service;
// neither touches the backing file directly.
package accounting

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bimalism/portal/internal/domain"
	"github.com/bimalism/portal/internal/infra/observability"
	"github.com/bimalism/portal/internal/infra/sqlite"
	"github.com/bimalism/portal/internal/infra/store"
)

// Service owns the accounting flow for one portal process.
type Service struct {
	store  *store.Store
	ledger *sqlite.DB // nil when the ledger is disabled
	log    *slog.Logger
}

// NewService creates the accounting service. ledger may be nil.
func NewService(st *store.Store, ledger *sqlite.DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: st, ledger: ledger, log: log}
}

// UpdateResult is the outcome of one applied update operation.
type UpdateResult struct {
	Record       domain.Record
	CoinsAdded   int64 // add_coin path only
	SecondsAdded int64 // update_timer path only
}

// ─── Queries ────────────────────────────────────────────────────────────────

// Query returns the current record, repairing silently but never invisibly:
// a corrupt backing file is logged and counted before the zero record goes
// out.
func (s *Service) Query() domain.Record {
	rec, status := s.store.Load()
	switch status {
	case store.LoadMissing:
		observability.StoreRepairs.WithLabelValues("missing").Inc()
	case store.LoadCorrupt:
		observability.StoreRepairs.WithLabelValues("corrupt").Inc()
		s.log.Warn("accounting file unreadable, serving zero record",
			"path", s.store.Path())
	}
	observability.QueryTotal.Inc()
	return rec
}

// History returns the most recent ledger sessions. Without a ledger it
// returns an empty slice.
func (s *Service) History(limit int) ([]sqlite.Session, error) {
	if s.ledger == nil {
		return []sqlite.Session{}, nil
	}
	return s.ledger.RecentSessions(limit)
}

// ─── Updates ────────────────────────────────────────────────────────────────

// Apply dispatches one update operation against the store.
//
// update_timer: study time grows by studySeconds and coins are recomputed.
// add_coin: floor(studySeconds/7200) coins are credited to the bonus pool;
// recorded study time is untouched.
func (s *Service) Apply(action domain.Action, studySeconds int64) (UpdateResult, error) {
	before := s.store.Read()

	var res UpdateResult
	var err error
	switch action {
	case domain.ActionUpdateTimer:
		var rec domain.Record
		rec, res.SecondsAdded, err = s.store.RecordStudySeconds(studySeconds)
		res.Record = rec
	case domain.ActionAddCoin:
		if studySeconds < 0 {
			err = domain.ErrNegativeSeconds
			break
		}
		res.CoinsAdded = domain.EarnedCoins(studySeconds)
		res.Record, err = s.store.CreditCoins(res.CoinsAdded)
	default:
		err = domain.ErrUnknownAction
	}

	if err != nil {
		observability.UpdatesTotal.WithLabelValues(string(action), "error").Inc()
		return UpdateResult{}, err
	}

	observability.UpdatesTotal.WithLabelValues(string(action), "ok").Inc()
	observability.StudySecondsRecorded.Add(float64(res.SecondsAdded))
	coinsDelta := res.Record.Coins - before.Coins
	if coinsDelta > 0 {
		observability.CoinsGranted.Add(float64(coinsDelta))
	}

	s.appendSession(sqlite.Session{
		Action:     string(action),
		Seconds:    studySeconds,
		CoinsDelta: coinsDelta,
		TotalCoins: res.Record.Coins,
		TotalStudy: res.Record.StudyTime,
	})
	return res, nil
}

// Credit adds coins directly to the bonus pool (CLI and the ?add= test
// endpoint).
func (s *Service) Credit(amount int64) (domain.Record, error) {
	before := s.store.Read()
	rec, err := s.store.CreditCoins(amount)
	if err != nil {
		observability.UpdatesTotal.WithLabelValues("credit", "error").Inc()
		return domain.Record{}, err
	}

	observability.UpdatesTotal.WithLabelValues("credit", "ok").Inc()
	observability.CoinsGranted.Add(float64(amount))

	s.appendSession(sqlite.Session{
		Action:     "credit",
		CoinsDelta: rec.Coins - before.Coins,
		TotalCoins: rec.Coins,
		TotalStudy: rec.StudyTime,
	})
	return rec, nil
}

// appendSession writes one ledger row. The record file is the source of
// truth, so a ledger failure is logged and counted but never propagated.
func (s *Service) appendSession(sess sqlite.Session) {
	if s.ledger == nil {
		return
	}
	sess.ID = uuid.NewString()
	sess.RecordedAt = time.Now().UTC()
	if err := s.ledger.InsertSession(sess); err != nil {
		observability.LedgerWriteFailures.Inc()
		s.log.Warn("ledger write failed", "action", sess.Action, "err", err)
	}
}
