package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/store"
)

type RunsHandler struct {
	DB        *store.DB
	RunStatus *atomic.Value
	RunOnce   func(ctx context.Context, date string) domain.RunResult
	Log       zerolog.Logger
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}
	runs, err := store.ListRuns(r.Context(), h.DB.Pool, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if runs == nil {
		runs = []domain.ScrapeRun{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (h RunsHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.RunStatus.Load().(RunStatus)
	WriteJSON(w, http.StatusOK, st)
}

// Trigger starts a run for the requested date (today when absent). The run
// happens in the background; the 202 body echoes the accepted date.
func (h RunsHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" && r.Body != nil {
		var body struct {
			Date string `json:"date"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		date = body.Date
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_date", "date must be YYYY-MM-DD")
			return
		}
	}

	// CAS so two concurrent triggers can't both get a 202.
	st, _ := h.RunStatus.Load().(RunStatus)
	if st.Running || !h.RunStatus.CompareAndSwap(st, RunStatus{Running: true, LastResult: st.LastResult}) {
		WriteError(w, r, http.StatusConflict, "run_in_progress", "a run is already in progress")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		res := h.RunOnce(ctx, date)
		h.RunStatus.Store(RunStatus{Running: false, LastResult: &res})
		h.Log.Info().Str("status", res.Status).Str("date", res.Date).Msg("triggered run finished")
	}()

	WriteJSON(w, http.StatusAccepted, map[string]string{"accepted": "true", "date": date})
}
