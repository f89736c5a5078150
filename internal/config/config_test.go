package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	require.True(t, res.OK(), "errors: %v", res.Errors)
}

func TestNormalizeCompanies(t *testing.T) {
	cfg := Default()
	cfg.Companies = []Company{
		{Name: "  Acme ", CareerURL: " https://acme.example/careers "},
		{Name: "acme"},
		{Name: ""},
		{Name: "Globex"},
	}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	require.Len(t, out.Companies, 2)
	require.Equal(t, "Acme", out.Companies[0].Name)
	require.Equal(t, "https://acme.example/careers", out.Companies[0].CareerURL)
	require.NotEmpty(t, res.Warnings) // duplicate reported
}

func TestValidationErrors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Schedule.Hour = 25
	cfg.Scrape.MaxPages = 0

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	require.Len(t, res.Errors, 3)
}

func TestGeneralQueriesDefaultWhenEmpty(t *testing.T) {
	cfg := Default()
	cfg.Scrape.GeneralQueries = []string{"  ", ""}

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	require.Equal(t, DefaultGeneralQueries, out.Scrape.GeneralQueries)
}

func TestRequestDelayBounds(t *testing.T) {
	cfg := Default()
	cfg.Scrape.RequestDelayMinMS = 0
	cfg.Scrape.RequestDelayMaxMS = 0
	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	require.Equal(t, 1000, out.Scrape.RequestDelayMinMS)
	require.Equal(t, 3000, out.Scrape.RequestDelayMaxMS)

	cfg.Scrape.RequestDelayMinMS = 2000
	cfg.Scrape.RequestDelayMaxMS = 500
	_, res = NormalizeAndValidate(cfg)
	require.False(t, res.OK())
}

func TestNoSourcesEnabled(t *testing.T) {
	var cfg Config
	cfg.App.Port = 8080
	cfg.App.DBPath = "x.db"
	cfg.Scrape.SourceTimeoutSeconds = 60
	cfg.Scrape.MaxPages = 1

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	require.Contains(t, res.Errors, "no sources enabled")
}

func TestSaveAtomicAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.App.Port = 9999
	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9999, loaded.App.Port)

	// second save keeps a backup of the previous file
	cfg.App.Port = 8888
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	require.NoError(t, err)
}

func TestEnsureUserConfigWritesDefaultOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yml")

	require.NoError(t, EnsureUserConfig(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default().App.Port, cfg.App.Port)

	cfg.App.Port = 9999
	require.NoError(t, SaveAtomic(path, cfg))
	require.NoError(t, EnsureUserConfig(path)) // existing file untouched
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.App.Port)
}

func TestOverlayCompanies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
companies:
  - name: Acme
    career_url: https://acme.example/careers
`), 0o644))

	cfg := Default()
	require.NoError(t, OverlayCompanies(&cfg, path))
	require.Len(t, cfg.Companies, 1)
	require.Equal(t, "Acme", cfg.Companies[0].Name)

	// missing file is not an error and leaves the list alone
	require.NoError(t, OverlayCompanies(&cfg, filepath.Join(dir, "missing.yml")))
	require.Len(t, cfg.Companies, 1)
}
