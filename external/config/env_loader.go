package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/nicksboson/CeriNote/internal/config"
)

type envConfig struct {
	Env                        string `env:"ENV" envDefault:"production"`
	Port                       int    `env:"PORT" envDefault:"8080"`
	UploadsDir                 string `env:"UPLOADS_DIR" envDefault:"./uploads"`
	RetentionDays              int    `env:"RETENTION_DAYS" envDefault:"0"`
	MaxUploadMB                int    `env:"MAX_UPLOAD_MB" envDefault:"100"`
	ConsentRequired            bool   `env:"CONSENT_REQUIRED" envDefault:"false"`
	DatabaseURL                string `env:"DATABASE_URL"`
	EncryptionKey              string `env:"ENCRYPTION_KEY"`
	TranscriberProvider        string `env:"TRANSCRIBER_PROVIDER" envDefault:"groq"`
	GroqAPIKey                 string `env:"GROQ_API_KEY"`
	GroqBaseURL                string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqWhisperModel           string `env:"GROQ_WHISPER_MODEL" envDefault:"whisper-large-v3"`
	GroqChatModel              string `env:"GROQ_CHAT_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqReasoningModel         string `env:"GROQ_REASONING_MODEL" envDefault:"openai/gpt-oss-120b"`
	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"chirp_3"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		Port:                       raw.Port,
		UploadsDir:                 raw.UploadsDir,
		RetentionDays:              raw.RetentionDays,
		MaxUploadMB:                raw.MaxUploadMB,
		ConsentRequired:            raw.ConsentRequired,
		DatabaseURL:                raw.DatabaseURL,
		EncryptionKey:              raw.EncryptionKey,
		TranscriberProvider:        raw.TranscriberProvider,
		GroqAPIKey:                 raw.GroqAPIKey,
		GroqBaseURL:                raw.GroqBaseURL,
		GroqWhisperModel:           raw.GroqWhisperModel,
		GroqChatModel:              raw.GroqChatModel,
		GroqReasoningModel:         raw.GroqReasoningModel,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
