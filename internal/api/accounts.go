package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bimalism/portal/internal/domain"
)

// ─── Accounting Façade ──────────────────────────────────────────────────────
//
// GET  /api/get_coins           - current record
// GET  /api/get_timer           - timer view of the same record
// POST /api/update_coins        - apply one update action
// GET  /api/update_coins?add=N  - direct coin credit (manual testing)
// GET  /api/history             - recent ledger sessions

// updateRequest is the wire form of an update action.
type updateRequest struct {
	Action       string `json:"action"`
	StudySeconds int64  `json:"study_seconds"`
}

// handleGetCoins returns the full record.
// GET /api/get_coins
func (s *Server) handleGetCoins(w http.ResponseWriter, r *http.Request) {
	rec := s.svc.Query()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"coins":        rec.Coins,
		"study_time":   rec.StudyTime,
		"last_updated": rec.LastUpdated,
	})
}

// handleGetTimer returns the timer view of the record.
// GET /api/get_timer
func (s *Server) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	rec := s.svc.Query()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"study_time": rec.StudyTime,
		"coins":      rec.Coins,
	})
}

// handleUpdateCoins applies one update action posted by the study timer.
// POST /api/update_coins
func (s *Server) handleUpdateCoins(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUpdateError(w, http.StatusOK, "invalid request body")
		return
	}

	action, err := domain.ParseAction(req.Action)
	if err != nil {
		writeUpdateError(w, http.StatusOK, err.Error())
		return
	}

	res, err := s.svc.Apply(action, req.StudySeconds)
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, domain.ErrWriteFailed) {
			// Persistence failures are real errors, not bad input.
			status = http.StatusInternalServerError
		}
		writeUpdateError(w, status, err.Error())
		return
	}

	resp := map[string]interface{}{
		"success":    true,
		"coins":      res.Record.Coins,
		"study_time": res.Record.StudyTime,
	}
	if action == domain.ActionAddCoin {
		resp["coins_added"] = res.CoinsAdded
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreditQuery credits coins directly from a query parameter.
// GET /api/update_coins?add=N
func (s *Server) handleCreditQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("add")
	if raw == "" {
		writeUpdateError(w, http.StatusOK, "no add parameter")
		return
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeUpdateError(w, http.StatusOK, "add parameter must be an integer")
		return
	}

	rec, err := s.svc.Credit(amount)
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, domain.ErrWriteFailed) {
			status = http.StatusInternalServerError
		}
		writeUpdateError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"coins":   rec.Coins,
		"added":   amount,
	})
}

// handleHistory returns recent study sessions from the ledger.
// GET /api/history?limit=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := s.svc.History(limit)
	if err != nil {
		writeUpdateError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}

// writeUpdateError writes the façade's error payload. Bad requests keep
// HTTP 200 with success=false, matching what the timer script expects.
func writeUpdateError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
