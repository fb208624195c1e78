package session

import (
	"time"

	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/risk"
	"github.com/nicksboson/CeriNote/internal/transcriber"
)

// Session is one clinical encounter's recording-to-report lifecycle and
// all derived artifacts. Text artifacts are written exactly once per
// pipeline run and never overwritten.
type Session struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AudioFilename string `json:"-"`
	OriginalName  string `json:"originalName,omitempty"`
	MimeType      string `json:"mimetype,omitempty"`
	Size          int64  `json:"size,omitempty"`
	Duration      string `json:"duration,omitempty"`

	CreatedAt         time.Time  `json:"createdAt"`
	StoredAt          time.Time  `json:"storedAt,omitempty"`
	TranscribedAt     *time.Time `json:"transcribedAt,omitempty"`
	ReportGeneratedAt *time.Time `json:"reportGeneratedAt,omitempty"`
	AudioDeletedAt    *time.Time `json:"audioDeletedAt,omitempty"`

	Transcription         string               `json:"transcription,omitempty"`
	TranscriptionSegments []transcriber.Segment `json:"transcriptionSegments,omitempty"`
	StructuredDialogue    string               `json:"structuredDialogue,omitempty"`
	MedicalReport         string               `json:"medicalReport,omitempty"`
	SOAPNote              string               `json:"soapNote,omitempty"`

	ICDCodes    *clinician.CodeSuggestions `json:"icdCodes,omitempty"`
	ScaleScores *clinician.ScaleScores     `json:"scaleScores,omitempty"`
	RiskFlags   *risk.Result               `json:"riskFlags,omitempty"`

	AudioDeleted  bool `json:"audioDeleted"`
	RetentionDays int  `json:"retentionDays"`
}

// AudioRef returns the stored audio filename, or empty once the audio is
// deleted. The AudioDeleted flag is authoritative over the stored value.
func (s *Session) AudioRef() string {
	if s.AudioDeleted {
		return ""
	}
	return s.AudioFilename
}

// URL returns the serving path for the session audio, absent once deleted.
func (s *Session) URL() string {
	ref := s.AudioRef()
	if ref == "" {
		return ""
	}
	return "/uploads/" + ref
}

// View is the serialized form returned to callers: the session plus its
// audio URL when (and only when) the audio still exists.
type View struct {
	*Session
	URL string `json:"url,omitempty"`
}

func (s *Session) View() View {
	return View{Session: s, URL: s.URL()}
}

// Summary is the list-view projection, metadata only.
type Summary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Duration         string    `json:"duration,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	HasTranscription bool      `json:"hasTranscription"`
	HasReport        bool      `json:"hasReport"`
}

func (s *Session) Summarize() Summary {
	return Summary{
		ID:               s.ID,
		Name:             s.Name,
		Duration:         s.Duration,
		CreatedAt:        s.CreatedAt,
		HasTranscription: s.Transcription != "",
		HasReport:        s.MedicalReport != "",
	}
}
