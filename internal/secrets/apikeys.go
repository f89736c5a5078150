// Package secrets resolves source API keys. The environment wins so
// containers and CI stay simple; the OS keychain is the fallback for
// workstation use.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "ukjobs"

	AdzunaAppID  = "ADZUNA_APP_ID"
	AdzunaAppKey = "ADZUNA_APP_KEY"
	ReedAPIKey   = "REED_API_KEY"
)

// Get looks up a named key, env first then keychain. A missing key returns
// "" with no error; keyed sources treat that as unavailable.
func Get(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	v, err := keyring.Get(KeyringService, name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func Set(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func Delete(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is empty")
	}
	return keyring.Delete(KeyringService, name)
}
