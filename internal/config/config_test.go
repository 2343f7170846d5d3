package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbank-ai/qbank/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.LLM.BlockNone)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 1, cfg.Limits.MinTotal)
	assert.Equal(t, 50, cfg.Limits.MaxTotal)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "qbank.yaml", `
llm:
  provider: openai
  model: gpt-4.1-mini
  timeout: 45s
limits:
  max_total: 30
log:
  level: debug
`)
	t.Setenv("QBANK_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30, cfg.Limits.MaxTotal)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("inverted limits", func(t *testing.T) {
		path := writeFile(t, "qbank.yaml", "limits:\n  min_total: 10\n  max_total: 5\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "limits.max_total")
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("QBANK_LLM_PROVIDER", "palm")
		_, err := Load("")
		assert.ErrorContains(t, err, "palm")
	})
}

func TestProviderConfig(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{
		Provider:  llm.ProviderOpenRouter,
		Model:     "google/gemini-2.5-pro",
		BaseURL:   "https://proxy.example/v1",
		Timeout:   time.Minute,
		BlockNone: true,
	}}

	out := cfg.ProviderConfig("sk-or-test")
	assert.Equal(t, llm.ProviderOpenRouter, out.Provider)
	assert.Equal(t, "sk-or-test", out.OpenRouter.APIKey)
	assert.Equal(t, "google/gemini-2.5-pro", out.OpenRouter.Model)
	assert.Equal(t, "https://proxy.example/v1", out.OpenRouter.BaseURL)
	assert.Equal(t, time.Minute, out.Timeout)
	assert.NoError(t, out.Validate())
}
