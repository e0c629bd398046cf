// Package domain contains pure accounting types with ZERO infrastructure imports.
// This is the innermost ring of the portal; it depends on nothing.
package domain

import (
	"fmt"
	"time"
)

// SecondsPerCoin is the study time required to earn one coin: two hours.
const SecondsPerCoin = 7200

// ─── Accounting Record ──────────────────────────────────────────────────────

// Record is the single persistent accounting record tracked by the portal.
// Coins is always the sum of coins earned from study time and coins credited
// directly into the bonus pool, so the two update paths can never
// desynchronize it.
type Record struct {
	Coins       int64  `json:"coins"`
	StudyTime   int64  `json:"study_time"` // cumulative study seconds
	BonusCoins  int64  `json:"bonus_coins"`
	LastUpdated string `json:"last_updated"` // RFC 3339, advisory only
}

// EarnedCoins returns the coins derived from study time alone.
func EarnedCoins(studySeconds int64) int64 {
	return studySeconds / SecondsPerCoin
}

// Recompute derives the reported coin total from study time and bonus pool.
func (r *Record) Recompute() {
	r.Coins = EarnedCoins(r.StudyTime) + r.BonusCoins
}

// Touch stamps the record with the given write time.
func (r *Record) Touch(now time.Time) {
	r.LastUpdated = now.Format(time.RFC3339)
}

// ZeroRecord returns a fresh zero-valued record stamped with now.
// It is the recovery value whenever the backing file is missing or corrupt.
func ZeroRecord(now time.Time) Record {
	r := Record{}
	r.Touch(now)
	return r
}

// ─── Utilities ──────────────────────────────────────────────────────────────

// FormatStudyTime renders cumulative study seconds as "3h 25m".
func FormatStudyTime(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}
