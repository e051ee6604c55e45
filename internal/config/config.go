package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Provider string // "openai" (default) or "gemini"

	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Embedding EmbeddingConfig
	Feedback  FeedbackConfig
	Export    ExportConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type EmbeddingConfig struct {
	Model string
}

type FeedbackConfig struct {
	DSN      string
	FilePath string
}

type ExportConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "openai"
	}

	return &Config{
		Port:     *port,
		Env:      env,
		Provider: provider,
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("OPENAI_MODEL")), "gpt-4o-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			Timeout: loadTimeout(),
		},
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		},
		Embedding: EmbeddingConfig{
			Model: firstNonEmpty(strings.TrimSpace(os.Getenv("EMBEDDING_MODEL")), "text-embedding-3-small"),
		},
		Feedback: FeedbackConfig{
			DSN:      strings.TrimSpace(os.Getenv("FEEDBACK_PG_DSN")),
			FilePath: firstNonEmpty(strings.TrimSpace(os.Getenv("FEEDBACK_FILE")), "data/feedback.json"),
		},
		Export: loadExportConfig(),
	}, nil
}

func loadTimeout() time.Duration {
	raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_MS"))
	if raw == "" {
		return 20 * time.Second
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 20 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

func loadExportConfig() ExportConfig {
	endpoint := strings.TrimSpace(os.Getenv("EXPORT_S3_ENDPOINT"))
	return ExportConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("EXPORT_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("EXPORT_S3_SECRET_KEY")),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("EXPORT_S3_BUCKET")), "gramtax-feedback"),
		UseSSL:    loadExportUseSSL(),
	}
}

func loadExportUseSSL() bool {
	raw := strings.TrimSpace(os.Getenv("EXPORT_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
