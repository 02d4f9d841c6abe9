package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.AppPort)
	assert.Equal(t, "https://openrouter.ai/api/v1/chat/completions", cfg.LLMAPIURL)
	assert.Equal(t, "auto", cfg.LLMProvider)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 500, cfg.ChatMaxTokens)
	assert.Equal(t, 800, cfg.QuizMaxTokens)
	assert.InDelta(t, 0.3, cfg.QuizTemperature, 1e-9)
	assert.Equal(t, 7*24*time.Hour, cfg.SignedURLTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "sqlite", cfg.DocStoreDriver)
	assert.Equal(t, DefaultJWKSURL, cfg.AuthJWKSURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LLM_API_URL", "http://localhost:11434/api/chat")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DOCSTORE_DRIVER", "redis")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/api/chat", cfg.LLMAPIURL)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "redis", cfg.DocStoreDriver)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "APP_PORT=8080\nQUIZ_MODEL=llama3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "llama3", cfg.QuizModel)
}

func TestLoad_RejectsInvalidTemperature(t *testing.T) {
	t.Setenv("CHAT_TEMPERATURE", "2.5")

	_, err := load(viper.New(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHAT_TEMPERATURE")
}

func TestConfig_Issuer(t *testing.T) {
	assert.Equal(t, "", (&Config{}).Issuer())
	assert.Equal(t, "https://securetoken.google.com/lms-demo", (&Config{AuthProjectID: "lms-demo"}).Issuer())
	assert.Equal(t, "https://issuer.test", (&Config{AuthProjectID: "x", AuthIssuer: "https://issuer.test"}).Issuer())
}

func TestLoad_NormalizesCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test/ ,,https://b.test:8443")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "https://b.test:8443"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RejectsInvalidCORSOrigin(t *testing.T) {
	for _, origin := range []string{"localhost:3000", "ftp://files.test", "http://a.test/app"} {
		t.Setenv("CORS_ALLOWED_ORIGINS", origin)

		_, err := load(viper.New(), t.TempDir())
		require.Error(t, err, origin)
		assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS", origin)
	}
}
