package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"ukjobs-engine/internal/domain"
	"ukjobs-engine/internal/store"
)

type CompaniesHandler struct {
	DB *store.DB
}

func (h CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := store.ListActiveCompanies(r.Context(), h.DB.Pool)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"companies": companies, "count": len(companies)})
}

// SetActive toggles a target company's active flag.
func (h CompaniesHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if err := store.SetCompanyActive(r.Context(), h.DB.Pool, req.Name, req.Active); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"name": req.Name, "active": req.Active})
}
