package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "SINK", "TZ_LOCATION", "NOTION_DATABASE_ID", "DEADLINE_TIME_ZONE", "MYSQL_DSN", "SLACK_WEBHOOK_URL", "LOG_LEVEL", PathEnv} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
port: "9000"
sink: mysql
location: America/Denver
mysql:
  dsn: "user:pass@tcp(db:3306)/thoughts?parseTime=true"
slack:
  webhook_url: https://hooks.slack.com/services/T/B/X
notion:
  time_zone: Europe/Paris
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, SinkMySQL, cfg.Sink)
	assert.Equal(t, "user:pass@tcp(db:3306)/thoughts?parseTime=true", cfg.MySQL.DSN)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.Slack.WebhookURL)
	assert.Equal(t, "Europe/Paris", cfg.Notion.TimeZone)
	assert.Equal(t, "6180f425330a4251bc3b0634a2e75926", cfg.Notion.DatabaseID)
	require.NoError(t, cfg.Validate())

	location, err := cfg.TimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "America/Denver", location.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("NOTION_DATABASE_ID", "from-env")

	path := writeConfig(t, "port: \"9000\"\nnotion:\n  database_id: from-file\n")
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-env", cfg.Notion.DatabaseID)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "port: [unterminated"))

	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown sink", func(c *Config) { c.Sink = "postgres" }},
		{"mysql without dsn", func(c *Config) { c.Sink = SinkMySQL }},
		{"mysql with bad dsn", func(c *Config) { c.Sink = SinkMySQL; c.MySQL.DSN = "not a dsn" }},
		{"notion without database", func(c *Config) { c.Notion.DatabaseID = "" }},
		{"bad location", func(c *Config) { c.Location = "Mars/Olympus" }},
		{"no port", func(c *Config) { c.Port = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}
