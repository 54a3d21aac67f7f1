package config

import (
	"net/url"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogLevel string

	// Gemini AI
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
	GeminiBaseURL    string

	// Code execution
	PistonURL string

	// Local model server
	OllamaURL   string
	OllamaModel string

	// Frontend
	StaticDir   string
	FrontendURL string
}

// Load reads the environment (and an optional .env file) into an immutable
// Config. Missing or malformed required values fail here, before any route
// is served, so misconfiguration never surfaces as per-request upstream
// failures.
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiTextModel:  getEnvOrDefault("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		GeminiImageModel: getEnvOrDefault("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-exp-image-generation"),
		GeminiBaseURL:    getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		PistonURL:        getEnvOrDefault("PISTON_URL", "https://emkc.org/api/v2/piston/execute"),
		OllamaURL:        getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:      getEnvOrDefault("OLLAMA_MODEL", "llama3"),
		StaticDir:        getEnvOrDefault("STATIC_DIR", "./web"),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.GeminiAPIKey, validation.Required.Error("GEMINI_API_KEY must be set")),
		validation.Field(&c.GeminiBaseURL, validation.Required, validation.By(validateServerURL)),
		validation.Field(&c.PistonURL, validation.Required, validation.By(validateServerURL)),
		validation.Field(&c.OllamaURL, validation.Required, validation.By(validateServerURL)),
	)
}

func validateServerURL(value interface{}) error {
	serverURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
