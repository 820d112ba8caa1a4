package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"story_generator/generator"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envAPIKey, envBaseURL, envModel, envServerAddr, envLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoadFromReader(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_STORY_KEY", "sk-from-env")

	yml := `
server_addr: ":9090"
log_level: debug
llm:
  provider: openai
  model: gpt-4o
  api_key: ${TEST_STORY_KEY}
  timeout: 45s
defaults:
  variant: viral
  temperature: 0.8
`
	cfg, err := LoadFromReader(strings.NewReader(yml))
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ServerAddr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "gpt-4o", cfg.LLM.Model)
	require.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	require.Equal(t, 45*time.Second, cfg.LLM.Timeout)

	req := cfg.BaseRequest()
	require.Equal(t, generator.VariantViral, req.Variant)
	require.NotNil(t, req.Temperature)
	require.InDelta(t, 0.8, *req.Temperature, 1e-9)

	settings := cfg.LLMSettings()
	require.Equal(t, "openai", settings.Provider)
	require.Equal(t, 45*time.Second, settings.Timeout)
}

func TestLoadFromReaderDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromReader(strings.NewReader("{}"))
	require.NoError(t, err)
	require.Equal(t, defaultServerAddr, cfg.ServerAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, generator.DefaultModel, cfg.LLM.Model)
	require.Equal(t, defaultTimeout, cfg.LLM.Timeout)
	require.Equal(t, generator.VariantStandard, cfg.BaseRequest().Variant)
	require.Nil(t, cfg.BaseRequest().Temperature)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAPIKey, "sk-env")
	t.Setenv(envModel, "gpt-4.1-mini")
	t.Setenv(envServerAddr, "127.0.0.1:7000")
	t.Setenv(envLogLevel, "error")

	cfg, err := LoadFromReader(strings.NewReader("llm:\n  model: gpt-4o\n"))
	require.NoError(t, err)
	require.Equal(t, "sk-env", cfg.LLM.APIKey)
	require.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	require.Equal(t, "127.0.0.1:7000", cfg.ServerAddr)
	require.Equal(t, "error", cfg.LogLevel)

	cfg, err = LoadFromReader(strings.NewReader("llm:\n  api_key: sk-file\n"))
	require.NoError(t, err)
	require.Equal(t, "sk-file", cfg.LLM.APIKey)
}

func TestValidateRejects(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		yml  string
		msg  string
	}{
		{"unknown provider", "llm:\n  provider: claude\n", "not supported"},
		{"deepseek without base url", "llm:\n  provider: deepseek\n", "base_url"},
		{"bad timeout", "llm:\n  timeout: soon\n", "invalid llm timeout"},
		{"negative timeout", "llm:\n  timeout: -5s\n", "must be positive"},
		{"unknown variant", "defaults:\n  variant: spicy\n", "defaults"},
		{"temperature too high", "defaults:\n  temperature: 1.5\n", "temperature"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tc.yml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLM.Provider)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: mock\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoadDotenvRespectsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("STORYGEN_DOTENV_PROBE=loaded\n"), 0o644))
	t.Setenv("NO_DOTENV", "")
	t.Setenv("ENV_FILE", path)
	t.Setenv("STORYGEN_DOTENV_PROBE", "")
	os.Unsetenv("STORYGEN_DOTENV_PROBE")

	loadDotenv()
	require.Equal(t, "loaded", os.Getenv("STORYGEN_DOTENV_PROBE"))
}

func TestLoadDotenvDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("STORYGEN_DOTENV_OFF=loaded\n"), 0o644))
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("ENV_FILE", path)
	t.Setenv("STORYGEN_DOTENV_OFF", "")
	os.Unsetenv("STORYGEN_DOTENV_OFF")

	loadDotenv()
	require.Empty(t, os.Getenv("STORYGEN_DOTENV_OFF"))
}
