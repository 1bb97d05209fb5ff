package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagerkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
listen: "0.0.0.0:9000"
path: /hooks/pagerduty
secrets:
  - topsecret
  - oldsecret
routing_key: R0UT1NGK3Y
base_url: https://events.eu.pagerduty.com/v2/
log_level: DEBUG
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "/hooks/pagerduty", cfg.Path)
	assert.Equal(t, []string{"topsecret", "oldsecret"}, cfg.Secrets)
	assert.Equal(t, "R0UT1NGK3Y", cfg.RoutingKey)
	assert.Equal(t, "https://events.eu.pagerduty.com/v2/", cfg.BaseURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
secrets:
  - topsecret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.Empty(t, cfg.RoutingKey)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("PAGERKIT_TEST_SECRET", "fromenv")
	t.Setenv("PAGERKIT_TEST_KEY", "keyfromenv")

	path := writeConfig(t, `
secrets:
  - ${PAGERKIT_TEST_SECRET}
routing_key: ${PAGERKIT_TEST_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"fromenv"}, cfg.Secrets)
	assert.Equal(t, "keyfromenv", cfg.RoutingKey)
}

func TestLoadUndefinedEnvVarIsError(t *testing.T) {
	path := writeConfig(t, `
secrets:
  - ${PAGERKIT_TEST_DOES_NOT_EXIST}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGERKIT_TEST_DOES_NOT_EXIST")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "secrets: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Path: "/webhook", Secrets: []string{"s"}}, ""},
		{"path without leading slash", Config{Path: "webhook"}, "must start with /"},
		{"empty secret entry", Config{Path: "/webhook", Secrets: []string{"s", ""}}, "secrets[1] is empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}
