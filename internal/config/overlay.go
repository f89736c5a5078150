// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type CompaniesFile struct {
	Companies []Company `yaml:"companies"`
}

// OverlayCompanies replaces the watch list from a separate companies file
// when one exists. A missing file is not an error.
func OverlayCompanies(cfg *Config, companiesPath string) error {
	b, err := os.ReadFile(companiesPath)
	if err != nil {
		// Missing companies file should not kill startup
		return nil
	}

	var cf CompaniesFile
	if err := yaml.Unmarshal(b, &cf); err != nil {
		return err
	}

	if len(cf.Companies) > 0 {
		cfg.Companies = cf.Companies
	}
	return nil
}
