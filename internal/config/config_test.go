package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.Equal(t, "https://api-inference.huggingface.co", cfg.HF.BaseURL)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.Equal(t, "data/history.db", cfg.History.Path)
	assert.False(t, cfg.TLS.Enable)
}

func TestLoadConfig_HFKeyFromEnv(t *testing.T) {
	t.Setenv("HF_API_KEY", "hf_secret_token")

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "hf_secret_token", cfg.HF.APIKey)
}

func TestLoadConfig_PrefixedEnvOverride(t *testing.T) {
	t.Setenv("AIME_SERVER_ADDR", ":7070")
	t.Setenv("AIME_HISTORY_DRIVER", "postgres")

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.History.Driver)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
hf:
  base_url: "https://inference.example.com/"
history:
  driver: postgres
  db:
    host: db.internal
    port: 5433
    user: app
    password: s3cret
    name: explorer
    sslmode: require
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	// trailing slash is stripped
	assert.Equal(t, "https://inference.example.com", cfg.HF.BaseURL)
	assert.Equal(t, "postgres", cfg.History.Driver)
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=s3cret dbname=explorer sslmode=require",
		cfg.HistoryConnString(),
	)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://x.test", normalizeBaseURL(" https://x.test/ "))
	assert.Equal(t, "https://x.test/v1", normalizeBaseURL("https://x.test/v1"))
}
