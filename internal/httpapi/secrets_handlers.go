package httpapi

import (
	"encoding/json"
	"net/http"

	"ukjobs-engine/internal/secrets"
)

type SecretsHandler struct{}

var allowedSecrets = map[string]bool{
	secrets.AdzunaAppID:  true,
	secrets.AdzunaAppKey: true,
	secrets.ReedAPIKey:   true,
}

// Set stores one API key in the OS keychain. Takes effect on the next run;
// env vars still win over stored values.
func (h SecretsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if !allowedSecrets[body.Name] {
		WriteError(w, r, http.StatusBadRequest, "unknown_secret", "unknown secret name")
		return
	}
	if err := secrets.Set(body.Name, body.Value); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"saved": true})
}
