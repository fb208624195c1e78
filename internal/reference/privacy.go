package reference

type PolicySection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PrivacyPolicy struct {
	Title       string          `json:"title"`
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Sections    []PolicySection `json:"sections"`
}

// CurrentPrivacyPolicy documents the data flow end to end; served
// verbatim so the frontend and the backend never disagree.
func CurrentPrivacyPolicy() PrivacyPolicy {
	return PrivacyPolicy{
		Title:       "CeriNote Privacy & Security Policy",
		Version:     "2.0",
		LastUpdated: "2026-02-17",
		Sections: []PolicySection{
			{
				Title:   "Data Flow",
				Content: "Audio is captured in-browser → Uploaded over encrypted HTTPS → Processed by AI (Groq API) → Transcription & reports generated → Audio auto-deleted (zero-retention default).",
			},
			{
				Title:   "Retention Policy",
				Content: "Default: Zero retention. Audio files are automatically deleted immediately after processing. Configurable retention windows: 0, 7, or 30 days. Auto-purge scheduler runs hourly to remove expired sessions.",
			},
			{
				Title:   "Encryption",
				Content: "All sensitive clinical data (transcriptions, reports, SOAP notes) is encrypted using AES-256-GCM before storage. Encryption keys are stored in environment vaults, never hardcoded. If breached, data remains unreadable.",
			},
			{
				Title:   "Third-Party AI Processing",
				Content: "CeriNote uses the Groq API for AI processing (Whisper for transcription, LLama for structuring). Per Groq's API terms, data is not used for model training. Audio is transmitted over encrypted channels.",
			},
			{
				Title:   "No Training Usage",
				Content: "CeriNote does NOT use patient data for training AI models. All processing is inference-only through third-party APIs with no-training agreements.",
			},
			{
				Title:   "Access Control",
				Content: "Session-based tenant isolation. Each doctor can only access their own sessions. No shared directories. Strict session ownership validation.",
			},
			{
				Title:   "Future Roadmap",
				Content: "Planned: Self-hosted deployment option, private in-house AI model hosting, per-clinic encryption keys, and HIPAA Business Associate Agreement (BAA) compliance.",
			},
		},
	}
}
