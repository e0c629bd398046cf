package domain

import (
	"errors"
	"testing"
	"time"
)

func TestEarnedCoins(t *testing.T) {
	tests := []struct {
		seconds int64
		want    int64
	}{
		{0, 0},
		{3600, 0},
		{7199, 0},
		{7200, 1},
		{7201, 1},
		{14400, 2},
		{14399, 1},
		{7200 * 30, 30},
	}

	for _, tt := range tests {
		if got := EarnedCoins(tt.seconds); got != tt.want {
			t.Errorf("EarnedCoins(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestRecordRecompute(t *testing.T) {
	r := Record{StudyTime: 14400, BonusCoins: 3}
	r.Recompute()
	if r.Coins != 5 {
		t.Errorf("Coins = %d, want 5", r.Coins)
	}

	// Recompute is idempotent
	r.Recompute()
	if r.Coins != 5 {
		t.Errorf("Coins after second Recompute = %d, want 5", r.Coins)
	}
}

func TestZeroRecord(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := ZeroRecord(now)

	if r.Coins != 0 || r.StudyTime != 0 || r.BonusCoins != 0 {
		t.Errorf("ZeroRecord not zero-valued: %+v", r)
	}
	if r.LastUpdated != "2024-06-01T12:00:00Z" {
		t.Errorf("LastUpdated = %q, want RFC 3339 stamp", r.LastUpdated)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"update_timer", ActionUpdateTimer, false},
		{"add_coin", ActionAddCoin, false},
		{"", "", true},
		{"reset", "", true},
		{"UPDATE_TIMER", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAction(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrUnknownAction) {
					t.Errorf("error = %v, want ErrUnknownAction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatStudyTime(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 0m"},
		{60, "0h 1m"},
		{3600, "1h 0m"},
		{3660, "1h 1m"},
		{7200*5 + 150, "10h 2m"},
	}

	for _, tt := range tests {
		if got := FormatStudyTime(tt.seconds); got != tt.want {
			t.Errorf("FormatStudyTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
