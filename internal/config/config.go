package config

import (
	"encoding/hex"
	"fmt"
)

const (
	TranscriberProviderGroq   = "groq"
	TranscriberProviderGoogle = "google"
)

type Config struct {
	Env                        string
	Port                       int
	UploadsDir                 string
	RetentionDays              int
	MaxUploadMB                int
	ConsentRequired            bool
	DatabaseURL                string
	EncryptionKey              string
	TranscriberProvider        string
	GroqAPIKey                 string
	GroqBaseURL                string
	GroqWhisperModel           string
	GroqChatModel              string
	GroqReasoningModel         string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	if c.UploadsDir == "" {
		return fmt.Errorf("UPLOADS_DIR is required")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("RETENTION_DAYS must be non-negative, got %d", c.RetentionDays)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	switch c.TranscriberProvider {
	case TranscriberProviderGroq:
	case TranscriberProviderGoogle:
		for _, req := range c.googleRequiredFieldChecks() {
			if req.value == "" {
				return fmt.Errorf("%s is required when TRANSCRIBER_PROVIDER=google", req.name)
			}
		}
	default:
		return fmt.Errorf("TRANSCRIBER_PROVIDER must be %q or %q, got %q",
			TranscriberProviderGroq, TranscriberProviderGoogle, c.TranscriberProvider)
	}
	if c.EncryptionKey != "" {
		key, err := hex.DecodeString(c.EncryptionKey)
		if err != nil {
			return fmt.Errorf("ENCRYPTION_KEY must be hex-encoded: %w", err)
		}
		if len(key) != 32 {
			return fmt.Errorf("ENCRYPTION_KEY must be 32 bytes (64 hex chars), got %d bytes", len(key))
		}
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) googleRequiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "GOOGLE_CLOUD_PROJECT_ID", value: c.GoogleCloudProjectID},
		{name: "GOOGLE_CLOUD_CREDENTIALS_JSON", value: c.GoogleCloudCredentialsJSON},
		{name: "GOOGLE_CLOUD_SPEECH_LOCATION", value: c.GoogleCloudSpeechLocation},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}
