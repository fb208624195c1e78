// Package pipeline sequences the clinical documentation stages for one
// session: transcription, dialogue structuring, report generation,
// clinical enrichment, risk scanning and retention enforcement.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/media"
	"github.com/nicksboson/CeriNote/internal/metrics"
	"github.com/nicksboson/CeriNote/internal/retention"
	"github.com/nicksboson/CeriNote/internal/risk"
	"github.com/nicksboson/CeriNote/internal/session"
	"github.com/nicksboson/CeriNote/internal/transcriber"
)

// Deps collects the ports the orchestrator drives. All are required
// except Metrics.
type Deps struct {
	Sessions    session.Store
	Media       media.Store
	Transcriber transcriber.Transcriber
	Structurer  clinician.Structurer
	Reporter    clinician.ReportWriter
	SOAPWriter  clinician.SOAPWriter
	Coder       clinician.Coder
	Scales      clinician.ScaleEstimator
	Scanner     *risk.Scanner
	Retention   *retention.Policy
	Audit       audit.Log
	Consents    consent.Ledger
	Metrics     *metrics.Metrics
}

type Orchestrator struct {
	cfg   *config.Config
	deps  Deps
	now   func() time.Time
	newID func() string
}

type Option func(*Orchestrator)

// WithClock and WithIDGenerator exist for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

func NewOrchestrator(cfg *config.Config, deps Deps, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:   cfg,
		deps:  deps,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessInput carries one unified pipeline request. Audio and Text are
// mutually exclusive; the text path skips transcription and structuring
// and uses the text as both transcript and dialogue.
type ProcessInput struct {
	SessionID    string
	Name         string
	Duration     string
	Audio        []byte
	MimeType     string
	OriginalName string
	Text         string
}

// UploadInput carries the first half of the two-call flow: store the
// audio now, transcribe later.
type UploadInput struct {
	SessionID    string
	Name         string
	Duration     string
	Audio        []byte
	MimeType     string
	OriginalName string
}

// Upload validates and stores the audio and persists the session in its
// uploaded state.
func (o *Orchestrator) Upload(ctx context.Context, input UploadInput) (*session.Session, error) {
	if err := o.validateAudio(input.Audio, input.MimeType); err != nil {
		return nil, err
	}

	filename, err := o.deps.Media.Save(input.Audio, media.ExtForMIME(input.MimeType))
	if err != nil {
		return nil, &StorageError{Op: "save_audio", Err: err}
	}

	sess, err := o.newSession(ctx, input.SessionID, input.Name)
	if err != nil {
		_ = o.deps.Media.Delete(filename)
		return nil, err
	}
	sess.AudioFilename = filename
	sess.OriginalName = input.OriginalName
	sess.MimeType = input.MimeType
	sess.Size = int64(len(input.Audio))
	sess.Duration = input.Duration

	if err := o.deps.Sessions.Put(ctx, sess); err != nil {
		_ = o.deps.Media.Delete(filename)
		return nil, &StorageError{Op: "persist_session", Err: err}
	}

	o.deps.Audit.Append(audit.ActionSessionCreated, sess.ID, map[string]string{"source": "upload"})
	slog.Info("session uploaded", "session_id", sess.ID, "name", sess.Name, "size", sess.Size)
	return sess, nil
}

// Process runs the unified pipeline: upload → transcribe → structure →
// report → coding+scales → risk scan → retention → persist.
func (o *Orchestrator) Process(ctx context.Context, input ProcessInput) (*session.Session, error) {
	started := o.now()

	audioPath := len(input.Audio) > 0
	if audioPath {
		if err := o.validateAudio(input.Audio, input.MimeType); err != nil {
			return nil, err
		}
	} else if strings.TrimSpace(input.Text) == "" {
		return nil, &ValidationError{Reason: "no audio file or text provided"}
	}

	if err := o.checkProviderConfig(); err != nil {
		return nil, err
	}

	sess, err := o.newSession(ctx, input.SessionID, input.Name)
	if err != nil {
		return nil, err
	}
	sess.Duration = input.Duration
	o.checkConsentGate(sess.ID)
	if o.cfg.ConsentRequired && !o.deps.Consents.Has(sess.ID) {
		return nil, &ValidationError{Reason: "consent record required before processing"}
	}

	// Save audio first so a provider failure can still clean it up.
	var filename string
	if audioPath {
		filename, err = o.deps.Media.Save(input.Audio, media.ExtForMIME(input.MimeType))
		if err != nil {
			return nil, o.fail(started, StageStorage, &StorageError{Op: "save_audio", Err: err})
		}
		sess.AudioFilename = filename
		sess.OriginalName = input.OriginalName
		sess.MimeType = input.MimeType
		sess.Size = int64(len(input.Audio))
	}
	cleanup := func() {
		if filename != "" {
			_ = o.deps.Media.Delete(filename)
		}
	}

	var transcript string
	if audioPath {
		slog.Info("pipeline transcribing", "session_id", sess.ID, "bytes", len(input.Audio))
		if o.deps.Metrics != nil {
			o.deps.Metrics.TranscriptionBytes.Add(float64(len(input.Audio)))
		}
		result, err := o.deps.Transcriber.Transcribe(ctx, input.Audio, input.MimeType, filename)
		if err != nil {
			cleanup()
			return nil, o.fail(started, StageTranscription, providerErr(StageTranscription, err))
		}
		transcript = result.Text
		sess.Transcription = transcript
		sess.TranscriptionSegments = result.Segments
		transcribedAt := o.now()
		sess.TranscribedAt = &transcribedAt
	} else {
		transcript = strings.TrimSpace(input.Text)
		sess.Transcription = transcript
	}

	var dialogue string
	if audioPath {
		dialogue, err = o.structure(ctx, transcript)
		if err != nil {
			cleanup()
			return nil, o.fail(started, StageStructuring, providerErr(StageStructuring, err))
		}
	} else {
		dialogue = transcript
	}
	sess.StructuredDialogue = dialogue

	report, err := o.deps.Reporter.GenerateReport(ctx, dialogue)
	if err != nil {
		cleanup()
		return nil, o.fail(started, StageReport, providerErr(StageReport, err))
	}
	sess.MedicalReport = report
	reportedAt := o.now()
	sess.ReportGeneratedAt = &reportedAt

	// Coding and scale estimation run concurrently; either may fail
	// without aborting the run.
	sess.ICDCodes, sess.ScaleScores = o.enrich(ctx, sess.ID, report)

	sess.RiskFlags = o.scan(sess.ID, transcript, dialogue, report)

	if err := o.deps.Sessions.Put(ctx, sess); err != nil {
		cleanup()
		return nil, o.fail(started, StageStorage, &StorageError{Op: "persist_session", Err: err})
	}

	o.appendRunAudits(sess, "process", audioPath)
	o.applyRetention(ctx, sess)

	if o.deps.Metrics != nil {
		o.deps.Metrics.RecordPipelineRun("success", o.now().Sub(started).Seconds())
	}
	slog.Info("pipeline complete", "session_id", sess.ID, "name", sess.Name)
	return sess, nil
}

// TranscribeExisting re-enters the pipeline at the transcription stage
// for an already-uploaded session. No report is generated; the risk
// scan covers transcript and dialogue only.
func (o *Orchestrator) TranscribeExisting(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := o.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ref := sess.AudioRef()
	if ref == "" || !o.deps.Media.Exists(ref) {
		return nil, &NotFoundError{Kind: "audio file", ID: sessionID}
	}
	if err := o.checkProviderConfig(); err != nil {
		return nil, err
	}

	audio, err := o.deps.Media.Read(ref)
	if err != nil {
		return nil, &StorageError{Op: "read_audio", Err: err}
	}

	started := o.now()
	if o.deps.Metrics != nil {
		o.deps.Metrics.TranscriptionBytes.Add(float64(len(audio)))
	}
	result, err := o.deps.Transcriber.Transcribe(ctx, audio, sess.MimeType, ref)
	if err != nil {
		return nil, o.fail(started, StageTranscription, providerErr(StageTranscription, err))
	}
	sess.Transcription = result.Text
	sess.TranscriptionSegments = result.Segments
	transcribedAt := o.now()
	sess.TranscribedAt = &transcribedAt

	dialogue, err := o.structure(ctx, result.Text)
	if err != nil {
		return nil, o.fail(started, StageStructuring, providerErr(StageStructuring, err))
	}
	sess.StructuredDialogue = dialogue

	sess.RiskFlags = o.scan(sess.ID, result.Text, dialogue, "")

	if err := o.deps.Sessions.Put(ctx, sess); err != nil {
		return nil, o.fail(started, StageStorage, &StorageError{Op: "persist_session", Err: err})
	}

	o.deps.Audit.Append(audit.ActionTranscriptionCompleted, sess.ID, map[string]string{"chars": fmt.Sprint(len(sess.Transcription))})
	o.deps.Audit.Append(audit.ActionDialogueStructured, sess.ID, nil)
	o.appendRiskAudit(sess)
	o.applyRetention(ctx, sess)

	if o.deps.Metrics != nil {
		o.deps.Metrics.RecordPipelineRun("success", o.now().Sub(started).Seconds())
	}
	slog.Info("transcription complete", "session_id", sess.ID)
	return sess, nil
}

// ReportFromText generates a clinical report for arbitrary dialogue
// text; when the text belongs to a stored session the artifact is
// persisted and audited against it.
func (o *Orchestrator) ReportFromText(ctx context.Context, text, sessionID string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Reason: "please provide dialogue text to analyze"}
	}
	if err := o.checkProviderConfig(); err != nil {
		return "", err
	}

	report, err := o.deps.Reporter.GenerateReport(ctx, text)
	if err != nil {
		return "", providerErr(StageReport, err)
	}

	if sessionID != "" {
		if sess, err := o.getSession(ctx, sessionID); err == nil {
			sess.MedicalReport = report
			reportedAt := o.now()
			sess.ReportGeneratedAt = &reportedAt
			if err := o.deps.Sessions.Put(ctx, sess); err != nil {
				slog.Error("failed to persist report", "session_id", sessionID, "error", err)
			}
		}
		o.deps.Audit.Append(audit.ActionReportGenerated, sessionID, map[string]string{"chars": fmt.Sprint(len(report))})
	}
	return report, nil
}

// SOAPFromText transforms a clinical report into a SOAP note.
func (o *Orchestrator) SOAPFromText(ctx context.Context, text, sessionID string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Reason: "please provide report text to transform"}
	}
	if err := o.checkProviderConfig(); err != nil {
		return "", err
	}

	note, err := o.deps.SOAPWriter.GenerateSOAPNote(ctx, text)
	if err != nil {
		return "", providerErr(StageSOAP, err)
	}

	if sessionID != "" {
		if sess, err := o.getSession(ctx, sessionID); err == nil {
			sess.SOAPNote = note
			if err := o.deps.Sessions.Put(ctx, sess); err != nil {
				slog.Error("failed to persist soap note", "session_id", sessionID, "error", err)
			}
		}
		o.deps.Audit.Append(audit.ActionSOAPGenerated, sessionID, nil)
	}
	return note, nil
}

// CodesFromText suggests ICD-10/DSM-5 codes for arbitrary clinical text.
func (o *Orchestrator) CodesFromText(ctx context.Context, text, sessionID string) (*clinician.CodeSuggestions, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Reason: "please provide clinical text to analyze"}
	}
	if err := o.checkProviderConfig(); err != nil {
		return nil, err
	}

	codes, err := o.deps.Coder.SuggestCodes(ctx, text)
	if err != nil {
		return nil, providerErr(StageCoding, err)
	}
	if sessionID != "" {
		o.deps.Audit.Append(audit.ActionICDCodesGenerated, sessionID, map[string]string{"count": fmt.Sprint(len(codes.Codes))})
	}
	return codes, nil
}

// ScalesFromText estimates psychiatric scale scores for arbitrary text.
func (o *Orchestrator) ScalesFromText(ctx context.Context, text, sessionID string) (*clinician.ScaleScores, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Reason: "please provide clinical text to analyze"}
	}
	if err := o.checkProviderConfig(); err != nil {
		return nil, err
	}

	scales, err := o.deps.Scales.EstimateScales(ctx, text)
	if err != nil {
		return nil, providerErr(StageScales, err)
	}
	if sessionID != "" {
		o.deps.Audit.Append(audit.ActionScalesCalculated, sessionID, nil)
	}
	return scales, nil
}

// DeleteSession removes a session and its audio file.
func (o *Orchestrator) DeleteSession(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := o.deps.Sessions.Delete(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, &NotFoundError{Kind: "session", ID: sessionID}
		}
		return nil, &StorageError{Op: "delete_session", Err: err}
	}
	if ref := sess.AudioRef(); ref != "" {
		if err := o.deps.Media.Delete(ref); err != nil {
			slog.Error("failed to delete session audio", "session_id", sessionID, "error", err)
		}
	}
	o.deps.Audit.Append(audit.ActionSessionDeleted, sessionID, map[string]string{"reason": "user_request"})
	return sess, nil
}

// Rename updates the session display name.
func (o *Orchestrator) Rename(ctx context.Context, sessionID, name string) (*session.Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Reason: "name is required"}
	}
	sess, err := o.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	previous := sess.Name
	sess.Name = strings.TrimSpace(name)
	if err := o.deps.Sessions.Put(ctx, sess); err != nil {
		return nil, &StorageError{Op: "persist_session", Err: err}
	}
	o.deps.Audit.Append(audit.ActionSessionEdited, sessionID, map[string]string{"previousName": previous, "name": sess.Name})
	return sess, nil
}

// Export returns the full session record and audits the export.
func (o *Orchestrator) Export(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := o.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	o.deps.Audit.Append(audit.ActionSessionExported, sessionID, nil)
	return sess, nil
}

// Get fetches a session without side effects.
func (o *Orchestrator) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	return o.getSession(ctx, sessionID)
}

func (o *Orchestrator) List(ctx context.Context) ([]session.Summary, error) {
	return o.deps.Sessions.List(ctx)
}

func (o *Orchestrator) validateAudio(audio []byte, mimeType string) error {
	if len(audio) == 0 {
		return &ValidationError{Reason: "no audio file provided"}
	}
	if int64(len(audio)) > o.cfg.MaxUploadBytes() {
		return &ValidationError{Reason: fmt.Sprintf("audio exceeds %dMB upload limit", o.cfg.MaxUploadMB)}
	}
	if !media.AllowedMIME(mimeType) {
		return &ValidationError{Reason: fmt.Sprintf("unsupported file type: %s", mimeType)}
	}
	return nil
}

// checkProviderConfig rejects misconfigured providers before any work
// is started, so a failed run never leaves partial artifacts behind.
// The chat ports are Groq-backed regardless of the transcriber
// provider, so the key is required even under Google transcription.
func (o *Orchestrator) checkProviderConfig() error {
	if o.cfg.GroqAPIKey == "" {
		return &ConfigurationError{Setting: "GROQ_API_KEY", Reason: "not configured"}
	}
	return nil
}

func (o *Orchestrator) checkConsentGate(sessionID string) {
	if !o.deps.Consents.Has(sessionID) && !o.cfg.ConsentRequired {
		slog.Warn("processing without consent record", "session_id", sessionID)
	}
}

func (o *Orchestrator) newSession(ctx context.Context, id, name string) (*session.Session, error) {
	if id == "" {
		id = o.newID()
	}
	if name == "" {
		count, err := o.deps.Sessions.Count(ctx)
		if err != nil {
			return nil, &StorageError{Op: "count_sessions", Err: err}
		}
		name = fmt.Sprintf("Session %d", count+1)
	}
	now := o.now()
	return &session.Session{
		ID:            id,
		Name:          name,
		CreatedAt:     now,
		StoredAt:      now,
		RetentionDays: o.cfg.RetentionDays,
	}, nil
}

func (o *Orchestrator) getSession(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := o.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, &NotFoundError{Kind: "session", ID: sessionID}
		}
		return nil, &StorageError{Op: "get_session", Err: err}
	}
	return sess, nil
}

func (o *Orchestrator) structure(ctx context.Context, transcript string) (string, error) {
	var b strings.Builder
	err := o.deps.Structurer.StructureDialogue(ctx, transcript, func(chunk string) {
		b.WriteString(chunk)
	})
	if err != nil {
		return "", err
	}
	dialogue := strings.TrimSpace(b.String())
	if dialogue == "" {
		return "", fmt.Errorf("structuring returned empty dialogue")
	}
	return dialogue, nil
}

// enrich runs coding and scale estimation concurrently. A failure in
// either yields a nil artifact, never an aborted run.
func (o *Orchestrator) enrich(ctx context.Context, sessionID, report string) (*clinician.CodeSuggestions, *clinician.ScaleScores) {
	var (
		wg     sync.WaitGroup
		codes  *clinician.CodeSuggestions
		scales *clinician.ScaleScores
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := o.deps.Coder.SuggestCodes(ctx, report)
		if err != nil {
			slog.Error("icd coding failed", "session_id", sessionID, "error", err)
			o.recordStageFailure(StageCoding)
			return
		}
		codes = result
	}()
	go func() {
		defer wg.Done()
		result, err := o.deps.Scales.EstimateScales(ctx, report)
		if err != nil {
			slog.Error("scale estimation failed", "session_id", sessionID, "error", err)
			o.recordStageFailure(StageScales)
			return
		}
		scales = result
	}()
	wg.Wait()
	return codes, scales
}

// scan runs the risk scanner over all available text, space-joined in
// transcript, dialogue, report order.
func (o *Orchestrator) scan(sessionID string, parts ...string) *risk.Result {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := o.deps.Scanner.Scan(strings.Join(nonEmpty, " "))
	if result.HasRisks {
		slog.Warn("risk indicators detected", "session_id", sessionID, "count", len(result.Flags), "highest", result.HighestSeverity)
		if o.deps.Metrics != nil {
			for _, flag := range result.Flags {
				o.deps.Metrics.RecordRiskFinding(string(flag.Severity))
			}
		}
	}
	return &result
}

func (o *Orchestrator) appendRunAudits(sess *session.Session, source string, audioPath bool) {
	o.deps.Audit.Append(audit.ActionSessionCreated, sess.ID, map[string]string{"source": source})
	if audioPath {
		o.deps.Audit.Append(audit.ActionTranscriptionCompleted, sess.ID, map[string]string{"chars": fmt.Sprint(len(sess.Transcription))})
		o.deps.Audit.Append(audit.ActionDialogueStructured, sess.ID, nil)
	}
	o.deps.Audit.Append(audit.ActionReportGenerated, sess.ID, map[string]string{"chars": fmt.Sprint(len(sess.MedicalReport))})
	if sess.ICDCodes != nil {
		o.deps.Audit.Append(audit.ActionICDCodesGenerated, sess.ID, map[string]string{"count": fmt.Sprint(len(sess.ICDCodes.Codes))})
	}
	if sess.ScaleScores != nil {
		o.deps.Audit.Append(audit.ActionScalesCalculated, sess.ID, nil)
	}
	o.appendRiskAudit(sess)
}

func (o *Orchestrator) appendRiskAudit(sess *session.Session) {
	if sess.RiskFlags == nil || !sess.RiskFlags.HasRisks {
		return
	}
	categories := make([]string, 0, len(sess.RiskFlags.Flags))
	for _, flag := range sess.RiskFlags.Flags {
		categories = append(categories, flag.Category)
	}
	o.deps.Audit.Append(audit.ActionRiskDetected, sess.ID, map[string]string{
		"categories":      strings.Join(categories, ","),
		"highestSeverity": string(sess.RiskFlags.HighestSeverity),
	})
}

// applyRetention deletes the audio right away under zero retention.
// Best-effort: a failure here never fails a pipeline run that already
// produced its artifacts.
func (o *Orchestrator) applyRetention(ctx context.Context, sess *session.Session) {
	if !o.deps.Retention.ZeroRetention() {
		return
	}
	if err := o.deps.Retention.DeleteAudio(ctx, sess, "zero_retention"); err != nil {
		slog.Error("zero-retention audio deletion failed", "session_id", sess.ID, "error", err)
	}
}

func (o *Orchestrator) recordStageFailure(stage string) {
	if o.deps.Metrics != nil {
		o.deps.Metrics.RecordStageFailure(stage)
	}
}

func (o *Orchestrator) fail(started time.Time, stage string, err error) error {
	o.recordStageFailure(stage)
	if o.deps.Metrics != nil {
		o.deps.Metrics.RecordPipelineRun("failure", o.now().Sub(started).Seconds())
	}
	return err
}

// providerErr tags a provider failure with its stage, passing
// configuration errors through untouched.
func providerErr(stage string, err error) error {
	var confErr *ConfigurationError
	if errors.As(err, &confErr) {
		return err
	}
	return &ProviderError{Stage: stage, Err: err}
}
