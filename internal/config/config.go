package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	LLMAPIURL        string        `mapstructure:"LLM_API_URL"`
	LLMProvider      string        `mapstructure:"LLM_PROVIDER"`
	OpenRouterAPIKey string        `mapstructure:"OPENROUTER_API_KEY"`
	LLMTimeout       time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMReferer       string        `mapstructure:"LLM_REFERER"`
	LLMTitle         string        `mapstructure:"LLM_TITLE"`

	ChatModel       string  `mapstructure:"CHAT_MODEL"`
	ChatMaxTokens   int     `mapstructure:"CHAT_MAX_TOKENS"`
	ChatTemperature float64 `mapstructure:"CHAT_TEMPERATURE"`
	QuizModel       string  `mapstructure:"QUIZ_MODEL"`
	QuizMaxTokens   int     `mapstructure:"QUIZ_MAX_TOKENS"`
	QuizTemperature float64 `mapstructure:"QUIZ_TEMPERATURE"`

	AuthProjectID string `mapstructure:"AUTH_PROJECT_ID"`
	AuthJWKSURL   string `mapstructure:"AUTH_JWKS_URL"`
	AuthIssuer    string `mapstructure:"AUTH_ISSUER"`

	DocStoreDriver string `mapstructure:"DOCSTORE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`

	BlobStoreDriver     string        `mapstructure:"BLOBSTORE_DRIVER"`
	BlobBucket          string        `mapstructure:"BLOB_BUCKET"`
	GCSEmulatorHost     string        `mapstructure:"GCS_EMULATOR_HOST"`
	GCSSignerEmail      string        `mapstructure:"GCS_SIGNER_EMAIL"`
	GCSSignerPrivateKey string        `mapstructure:"GCS_SIGNER_PRIVATE_KEY"`
	S3Region            string        `mapstructure:"S3_REGION"`
	S3Endpoint          string        `mapstructure:"S3_ENDPOINT"`
	S3UsePathStyle      bool          `mapstructure:"S3_USE_PATH_STYLE"`
	SignedURLTTL        time.Duration `mapstructure:"SIGNED_URL_TTL"`
	UploadMaxBytes      int64         `mapstructure:"UPLOAD_MAX_BYTES"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 5000)
	v.SetDefault("LOG_LEVEL", "INFO")

	v.SetDefault("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("LLM_PROVIDER", "auto")
	v.SetDefault("OPENROUTER_API_KEY", "")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LLM_REFERER", "http://localhost")
	v.SetDefault("LLM_TITLE", "LLM-LMS")

	v.SetDefault("CHAT_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1")
	v.SetDefault("CHAT_MAX_TOKENS", 500)
	v.SetDefault("CHAT_TEMPERATURE", 0.2)
	v.SetDefault("QUIZ_MODEL", "openchat/openchat-3.5-0106")
	v.SetDefault("QUIZ_MAX_TOKENS", 800)
	v.SetDefault("QUIZ_TEMPERATURE", 0.3)

	v.SetDefault("AUTH_PROJECT_ID", "")
	v.SetDefault("AUTH_JWKS_URL", DefaultJWKSURL)
	v.SetDefault("AUTH_ISSUER", "")

	v.SetDefault("DOCSTORE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "./data/lms.db")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/llm_lms")
	v.SetDefault("REDIS_ADDR", "localhost:6379")

	v.SetDefault("BLOBSTORE_DRIVER", "none")
	v.SetDefault("BLOB_BUCKET", "")
	v.SetDefault("GCS_EMULATOR_HOST", "")
	v.SetDefault("GCS_SIGNER_EMAIL", "")
	v.SetDefault("GCS_SIGNER_PRIVATE_KEY", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("SIGNED_URL_TTL", "168h")
	v.SetDefault("UPLOAD_MAX_BYTES", 32<<20)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// LoadConfig reads configuration from an optional .env file and the environment.
// A missing .env file is not an error; an unreadable one is.
func LoadConfig() (*Config, error) {
	return load(viper.GetViper(), ".", "./backend")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LLMAPIURL == "" {
		return fmt.Errorf("LLM_API_URL must not be empty")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.ChatMaxTokens <= 0 || c.QuizMaxTokens <= 0 {
		return fmt.Errorf("max token settings must be positive")
	}
	for name, t := range map[string]float64{"CHAT_TEMPERATURE": c.ChatTemperature, "QUIZ_TEMPERATURE": c.QuizTemperature} {
		if t < 0 || t > 2 {
			return fmt.Errorf("%s must be within [0,2], got %v", name, t)
		}
	}
	if c.SignedURLTTL <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL must be positive, got %s", c.SignedURLTTL)
	}
	origins, err := normalizeOrigins(c.CORSAllowedOrigins)
	if err != nil {
		return err
	}
	c.CORSAllowedOrigins = origins
	return nil
}

// normalizeOrigins trims entries, drops empty ones and the trailing slash, and
// requires each to be "*" or a scheme://host[:port] origin.
func normalizeOrigins(raw []string) ([]string, error) {
	var origins []string
	for _, entry := range raw {
		for _, origin := range strings.Split(entry, ",") {
			origin = strings.TrimSuffix(strings.TrimSpace(origin), "/")
			if origin == "" {
				continue
			}
			if origin != "*" {
				u, err := url.Parse(origin)
				if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" || u.RawQuery != "" {
					return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: %q is not an origin", origin)
				}
			}
			origins = append(origins, origin)
		}
	}
	return origins, nil
}

// Issuer returns the expected token issuer for the configured identity project.
func (c *Config) Issuer() string {
	if c.AuthIssuer != "" {
		return c.AuthIssuer
	}
	if c.AuthProjectID == "" {
		return ""
	}
	return "https://securetoken.google.com/" + c.AuthProjectID
}
