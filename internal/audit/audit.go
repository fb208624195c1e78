package audit

import "time"

// Action identifies one auditable event kind. The log accepts any action
// string; these constants cover the session lifecycle. Recording
// start/stop and PDF download originate in the browser and are reserved
// vocabulary; no server path emits them.
type Action string

const (
	ActionSessionCreated         Action = "SESSION_CREATED"
	ActionSessionEdited          Action = "SESSION_EDITED"
	ActionSessionDeleted         Action = "SESSION_DELETED"
	ActionSessionExported        Action = "SESSION_EXPORTED"
	ActionConsentGiven           Action = "CONSENT_GIVEN"
	ActionRecordingStarted       Action = "RECORDING_STARTED"
	ActionRecordingStopped       Action = "RECORDING_STOPPED"
	ActionTranscriptionCompleted Action = "TRANSCRIPTION_COMPLETED"
	ActionDialogueStructured     Action = "DIALOGUE_STRUCTURED"
	ActionReportGenerated        Action = "REPORT_GENERATED"
	ActionSOAPGenerated          Action = "SOAP_GENERATED"
	ActionAudioDeleted           Action = "AUDIO_DELETED"
	ActionRiskDetected           Action = "RISK_DETECTED"
	ActionICDCodesGenerated      Action = "ICD_CODES_GENERATED"
	ActionScalesCalculated       Action = "SCALES_CALCULATED"
	ActionPDFDownloaded          Action = "PDF_DOWNLOADED"
)

// Entry is one immutable audit record. Entries are never updated or
// deleted once appended.
type Entry struct {
	AuditID   string            `json:"auditId"`
	Action    Action            `json:"action"`
	SessionID string            `json:"sessionId"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata"`
}

// Summary aggregates the whole log.
type Summary struct {
	TotalEvents  int            `json:"totalEvents"`
	ActionCounts map[Action]int `json:"actionCounts"`
	OldestEvent  *time.Time     `json:"oldestEvent"`
	NewestEvent  *time.Time     `json:"newestEvent"`
}

// Log is an append-only event log keyed by session id and action kind.
// Append must not fail under normal operation; implementations log and
// swallow storage problems rather than surfacing them to the pipeline.
type Log interface {
	Append(action Action, sessionID string, metadata map[string]string) Entry
	BySession(sessionID string) []Entry
	All() []Entry
	Summary() Summary
}
