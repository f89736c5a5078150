package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"ukjobs-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.CfgVal.Load().(config.Config)
	WriteJSON(w, http.StatusOK, cfg)
}

// Put validates, persists atomically, then swaps the live copy.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	normalized, res := config.NormalizeAndValidate(incoming)
	if !res.OK() {
		WriteJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	h.CfgVal.Store(normalized)
	WriteJSON(w, http.StatusOK, map[string]any{"saved": true, "warnings": res.Warnings})
}
