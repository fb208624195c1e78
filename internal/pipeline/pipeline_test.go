package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nicksboson/CeriNote/external/store"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/clinician"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/retention"
	"github.com/nicksboson/CeriNote/internal/risk"
	"github.com/nicksboson/CeriNote/internal/session"
	"github.com/nicksboson/CeriNote/internal/transcriber"
)

type fakeMediaStore struct {
	files map[string][]byte
	seq   int
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{files: make(map[string][]byte)}
}

func (m *fakeMediaStore) Save(data []byte, ext string) (string, error) {
	m.seq++
	name := fmt.Sprintf("audio-%d%s", m.seq, ext)
	m.files[name] = data
	return name, nil
}

func (m *fakeMediaStore) Read(filename string) ([]byte, error) {
	data, ok := m.files[filename]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", filename)
	}
	return data, nil
}

func (m *fakeMediaStore) Delete(filename string) error {
	delete(m.files, filename)
	return nil
}

func (m *fakeMediaStore) Exists(filename string) bool {
	_, ok := m.files[filename]
	return ok
}

func (m *fakeMediaStore) Path(filename string) string { return "/tmp/" + filename }

type stubTranscriber struct {
	result *transcriber.Result
	err    error
	calls  int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _, _ string) (*transcriber.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubStructurer struct {
	chunks []string
	err    error
}

func (s *stubStructurer) StructureDialogue(_ context.Context, _ string, onChunk func(string)) error {
	if s.err != nil {
		return s.err
	}
	for _, chunk := range s.chunks {
		onChunk(chunk)
	}
	return nil
}

type stubReporter struct {
	report string
	err    error
}

func (s *stubReporter) GenerateReport(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.report, nil
}

type stubSOAPWriter struct {
	note string
	err  error
}

func (s *stubSOAPWriter) GenerateSOAPNote(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.note, nil
}

type stubCoder struct {
	codes *clinician.CodeSuggestions
	err   error
}

func (s *stubCoder) SuggestCodes(_ context.Context, _ string) (*clinician.CodeSuggestions, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.codes, nil
}

type stubScaleEstimator struct {
	scales *clinician.ScaleScores
	err    error
}

func (s *stubScaleEstimator) EstimateScales(_ context.Context, _ string) (*clinician.ScaleScores, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scales, nil
}

type fixture struct {
	orch        *Orchestrator
	cfg         *config.Config
	sessions    session.Store
	media       *fakeMediaStore
	auditLog    audit.Log
	consents    consent.Ledger
	transcriber *stubTranscriber
	structurer  *stubStructurer
	reporter    *stubReporter
	soap        *stubSOAPWriter
	coder       *stubCoder
	scales      *stubScaleEstimator
}

func newFixture(t *testing.T, mutate ...func(*fixture)) *fixture {
	t.Helper()
	f := &fixture{
		cfg: &config.Config{
			Port:                8080,
			UploadsDir:          "./uploads",
			MaxUploadMB:         100,
			RetentionDays:       0,
			TranscriberProvider: config.TranscriberProviderGroq,
			GroqAPIKey:          "test-key",
		},
		sessions: store.NewMemorySessionStore(nil),
		media:    newFakeMediaStore(),
		auditLog: store.NewMemoryAuditLog(),
		consents: store.NewMemoryConsentLedger(),
		transcriber: &stubTranscriber{result: &transcriber.Result{
			Text:     "hello doctor I feel fine",
			Segments: []transcriber.Segment{{Start: 0, End: 2.5, Text: "hello doctor I feel fine"}},
		}},
		structurer: &stubStructurer{chunks: []string{"Doctor: \"hello\"\n", "Patient: \"I feel fine\""}},
		reporter:   &stubReporter{report: "**Chief Complaint**\n- Not Reported"},
		soap:       &stubSOAPWriter{note: "PSYCHIATRIC SOAP NOTE"},
		coder: &stubCoder{codes: &clinician.CodeSuggestions{
			Codes:      []clinician.CodeSuggestion{{ICD10: "F32.1", DSM5: "MDD", Description: "x", Confidence: clinician.ConfidenceHigh}},
			Disclaimer: clinician.CodesDisclaimer,
		}},
		scales: &stubScaleEstimator{scales: &clinician.ScaleScores{
			PHQ9:       clinician.ScaleScore{Score: 5, Severity: "Mild"},
			Disclaimer: clinician.ScalesDisclaimer,
		}},
	}
	for _, m := range mutate {
		m(f)
	}

	policy := retention.NewPolicy(f.sessions, f.media, f.auditLog, nil, f.cfg.RetentionDays)
	f.orch = NewOrchestrator(f.cfg, Deps{
		Sessions:    f.sessions,
		Media:       f.media,
		Transcriber: f.transcriber,
		Structurer:  f.structurer,
		Reporter:    f.reporter,
		SOAPWriter:  f.soap,
		Coder:       f.coder,
		Scales:      f.scales,
		Scanner:     risk.NewScanner(),
		Retention:   policy,
		Audit:       f.auditLog,
		Consents:    f.consents,
	})
	return f
}

func audioInput() ProcessInput {
	return ProcessInput{
		Name:         "Morning Session",
		Audio:        []byte("webm-bytes"),
		MimeType:     "audio/webm",
		OriginalName: "session.webm",
		Duration:     "02:31",
	}
}

func actionSequence(entries []audit.Entry) []audit.Action {
	out := make([]audit.Action, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestProcessAudioHappyPath(t *testing.T) {
	f := newFixture(t)

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sess.Transcription != "hello doctor I feel fine" {
		t.Fatalf("unexpected transcription: %q", sess.Transcription)
	}
	if sess.StructuredDialogue != "Doctor: \"hello\"\nPatient: \"I feel fine\"" {
		t.Fatalf("unexpected dialogue: %q", sess.StructuredDialogue)
	}
	if sess.MedicalReport == "" || sess.ReportGeneratedAt == nil {
		t.Fatal("expected report artifacts")
	}
	if sess.ICDCodes == nil || sess.ScaleScores == nil {
		t.Fatal("expected clinical enrichment artifacts")
	}
	if sess.RiskFlags == nil || sess.RiskFlags.HasRisks {
		t.Fatalf("expected clean risk result, got %+v", sess.RiskFlags)
	}

	stored, err := f.sessions.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("expected persisted session: %v", err)
	}
	if stored.Transcription != sess.Transcription {
		t.Fatal("persisted session does not match result")
	}
}

func TestProcessZeroRetentionDeletesAudio(t *testing.T) {
	f := newFixture(t)

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !sess.AudioDeleted || sess.AudioDeletedAt == nil {
		t.Fatalf("expected zero-retention deletion in the returned session: %+v", sess)
	}
	if sess.AudioRef() != "" || sess.URL() != "" {
		t.Fatal("expected no audio ref once deleted")
	}
	if len(f.media.files) != 0 {
		t.Fatalf("expected no audio files on disk, got %v", f.media.files)
	}
}

func TestProcessPositiveRetentionKeepsAudio(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.RetentionDays = 7 })

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sess.AudioDeleted {
		t.Fatal("audio must be kept under a positive retention window")
	}
	if sess.RetentionDays != 7 {
		t.Fatalf("unexpected retention days: %d", sess.RetentionDays)
	}
	if !f.media.Exists(sess.AudioFilename) {
		t.Fatal("expected audio file to remain")
	}
	if !strings.HasPrefix(sess.URL(), "/uploads/") {
		t.Fatalf("unexpected url: %q", sess.URL())
	}
}

func TestProcessAuditOrdering(t *testing.T) {
	f := newFixture(t)

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []audit.Action{
		audit.ActionSessionCreated,
		audit.ActionTranscriptionCompleted,
		audit.ActionDialogueStructured,
		audit.ActionReportGenerated,
		audit.ActionICDCodesGenerated,
		audit.ActionScalesCalculated,
		audit.ActionAudioDeleted,
	}
	got := actionSequence(f.auditLog.BySession(sess.ID))
	if len(got) != len(want) {
		t.Fatalf("expected %d audit entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit entry %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestProcessRiskDetectionAudited(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.transcriber.result = &transcriber.Result{Text: "Patient reports suicidal ideation and has been cutting her arms."}
	})

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sess.RiskFlags == nil || !sess.RiskFlags.HasRisks {
		t.Fatal("expected risk findings")
	}
	if sess.RiskFlags.HighestSeverity != risk.SeverityCritical {
		t.Fatalf("unexpected highest severity: %s", sess.RiskFlags.HighestSeverity)
	}

	var riskEntry *audit.Entry
	for _, entry := range f.auditLog.BySession(sess.ID) {
		if entry.Action == audit.ActionRiskDetected {
			e := entry
			riskEntry = &e
		}
	}
	if riskEntry == nil {
		t.Fatal("expected a RISK_DETECTED audit entry")
	}
	if !strings.Contains(riskEntry.Metadata["categories"], "SUICIDE_RISK") {
		t.Fatalf("unexpected risk metadata: %+v", riskEntry.Metadata)
	}
}

func TestProcessPartialFailureCodingDegrades(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.coder.err = fmt.Errorf("provider overloaded")
	})

	sess, err := f.orch.Process(context.Background(), audioInput())
	if err != nil {
		t.Fatalf("coding failure must not abort the run: %v", err)
	}
	if sess.ICDCodes != nil {
		t.Fatal("expected nil icd codes after coding failure")
	}
	if sess.ScaleScores == nil {
		t.Fatal("expected scale scores despite coding failure")
	}

	actions := actionSequence(f.auditLog.BySession(sess.ID))
	for _, action := range actions {
		if action == audit.ActionICDCodesGenerated {
			t.Fatal("no ICD audit entry expected after coding failure")
		}
	}
	found := false
	for _, action := range actions {
		if action == audit.ActionScalesCalculated {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a scales audit entry")
	}
}

func TestProcessReportFailureRollsBack(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.reporter.err = fmt.Errorf("model unavailable")
	})

	_, err := f.orch.Process(context.Background(), audioInput())
	if err == nil {
		t.Fatal("expected report stage error")
	}
	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Stage != StageReport {
		t.Fatalf("expected ProviderError at report stage, got %v", err)
	}
	if len(f.media.files) != 0 {
		t.Fatal("uploaded audio must be cleaned up on report failure")
	}
	count, _ := f.sessions.Count(context.Background())
	if count != 0 {
		t.Fatalf("no session may be persisted after rollback, got %d", count)
	}
}

func TestProcessTranscriptionFailureRollsBack(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.transcriber.err = fmt.Errorf("whisper timeout")
	})

	_, err := f.orch.Process(context.Background(), audioInput())
	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Stage != StageTranscription {
		t.Fatalf("expected ProviderError at transcription stage, got %v", err)
	}
	if len(f.media.files) != 0 {
		t.Fatal("uploaded audio must be cleaned up on transcription failure")
	}
}

func TestProcessValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ProcessInput
	}{
		{"no audio or text", ProcessInput{}},
		{"unsupported mime", ProcessInput{Audio: []byte("x"), MimeType: "application/pdf"}},
		{"blank text", ProcessInput{Text: "   \n  "}},
	}
	for _, tc := range cases {
		_, err := f.orch.Process(ctx, tc.input)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
	if len(f.media.files) != 0 {
		t.Fatal("validation failures must not write any file")
	}
}

func TestProcessOversizedAudioRejected(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.MaxUploadMB = 1 })

	input := audioInput()
	input.Audio = make([]byte, 2*1024*1024)
	_, err := f.orch.Process(context.Background(), input)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProcessMissingAPIKeyFailsBeforeAnyWork(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.GroqAPIKey = "" })

	_, err := f.orch.Process(context.Background(), audioInput())
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if len(f.media.files) != 0 {
		t.Fatal("no audio may be written against a misconfigured provider")
	}
	if f.transcriber.calls != 0 {
		t.Fatal("no provider call may be attempted")
	}
}

func TestProcessMissingAPIKeyFailsUnderGoogleTranscriber(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.cfg.TranscriberProvider = config.TranscriberProviderGoogle
		f.cfg.GroqAPIKey = ""
	})

	_, err := f.orch.Process(context.Background(), audioInput())
	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if f.transcriber.calls != 0 {
		t.Fatal("the chat ports still need the key, so transcription must not start")
	}
	if len(f.media.files) != 0 {
		t.Fatal("no audio may be written against a misconfigured provider")
	}
}

func TestProcessTextPathSkipsAudioStages(t *testing.T) {
	f := newFixture(t)

	sess, err := f.orch.Process(context.Background(), ProcessInput{
		Name: "Typed Notes",
		Text: "Doctor: \"how are you\"\nPatient: \"fine\"",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if f.transcriber.calls != 0 {
		t.Fatal("text path must not transcribe")
	}
	if sess.Transcription != sess.StructuredDialogue {
		t.Fatal("text path uses the input as both transcript and dialogue")
	}
	if sess.MedicalReport == "" {
		t.Fatal("expected a report on the text path")
	}
	if sess.AudioFilename != "" {
		t.Fatal("text path must not store audio")
	}
}

func TestProcessConsentHardGate(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.ConsentRequired = true })
	ctx := context.Background()

	input := audioInput()
	input.SessionID = "sess-gated"
	if _, err := f.orch.Process(ctx, input); err == nil {
		t.Fatal("expected rejection without a consent record")
	}

	f.consents.LogConsent(consent.LogConsentInput{SessionID: "sess-gated", DoctorID: "doc-1"})
	if _, err := f.orch.Process(ctx, input); err != nil {
		t.Fatalf("expected processing to proceed with consent, got %v", err)
	}
}

func TestProcessConsentSoftGateProceeds(t *testing.T) {
	f := newFixture(t)

	if _, err := f.orch.Process(context.Background(), audioInput()); err != nil {
		t.Fatalf("soft gate must not block processing: %v", err)
	}
}

func TestUploadThenTranscribe(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.RetentionDays = 7 })
	ctx := context.Background()

	uploaded, err := f.orch.Upload(ctx, UploadInput{
		Name:     "Two Call",
		Audio:    []byte("webm-bytes"),
		MimeType: "audio/webm",
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if uploaded.Transcription != "" {
		t.Fatal("upload must not transcribe")
	}
	got := actionSequence(f.auditLog.BySession(uploaded.ID))
	if len(got) != 1 || got[0] != audit.ActionSessionCreated {
		t.Fatalf("unexpected audit after upload: %v", got)
	}

	sess, err := f.orch.TranscribeExisting(ctx, uploaded.ID)
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if sess.Transcription == "" || sess.StructuredDialogue == "" {
		t.Fatal("expected transcript and dialogue")
	}
	if sess.MedicalReport != "" {
		t.Fatal("two-call transcription must not generate a report")
	}
	if sess.RiskFlags == nil {
		t.Fatal("expected a risk scan result")
	}

	actions := actionSequence(f.auditLog.BySession(sess.ID))
	want := []audit.Action{
		audit.ActionSessionCreated,
		audit.ActionTranscriptionCompleted,
		audit.ActionDialogueStructured,
	}
	if len(actions) != len(want) {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("audit entry %d: expected %s, got %s", i, want[i], actions[i])
		}
	}
}

func TestTranscribeExistingMissingSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.TranscribeExisting(context.Background(), "missing")
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Kind != "session" {
		t.Fatalf("expected session NotFoundError, got %v", err)
	}
}

func TestTranscribeExistingMissingAudio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := &session.Session{ID: "sess-1", AudioFilename: "gone.webm"}
	if err := f.sessions.Put(ctx, sess); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	_, err := f.orch.TranscribeExisting(ctx, "sess-1")
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Kind != "audio file" {
		t.Fatalf("expected audio NotFoundError, got %v", err)
	}
}

func TestAudioDeletedNeverReverts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.orch.Process(ctx, audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	deletedAt := *sess.AudioDeletedAt

	renamed, err := f.orch.Rename(ctx, sess.ID, "Renamed")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if !renamed.AudioDeleted {
		t.Fatal("audioDeleted must never revert to false")
	}
	if renamed.AudioDeletedAt == nil || !renamed.AudioDeletedAt.Equal(deletedAt) {
		t.Fatalf("audioDeletedAt must not change, got %v", renamed.AudioDeletedAt)
	}
}

func TestDeleteSession(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.RetentionDays = 7 })
	ctx := context.Background()

	sess, err := f.orch.Process(ctx, audioInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	deleted, err := f.orch.DeleteSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != sess.ID {
		t.Fatalf("unexpected deleted session: %s", deleted.ID)
	}
	if f.media.Exists(sess.AudioFilename) {
		t.Fatal("expected audio file removed with the session")
	}
	if _, err := f.orch.Get(ctx, sess.ID); err == nil {
		t.Fatal("expected session to be gone")
	}

	actions := actionSequence(f.auditLog.BySession(sess.ID))
	if actions[len(actions)-1] != audit.ActionSessionDeleted {
		t.Fatalf("expected a SESSION_DELETED audit entry, got %v", actions)
	}
}

func TestDeleteSessionMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.DeleteSession(context.Background(), "missing")
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestReportFromTextValidatesInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.orch.ReportFromText(context.Background(), "   ", "")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSOAPFromTextPersistsToSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := &session.Session{ID: "sess-1", MedicalReport: "report"}
	if err := f.sessions.Put(ctx, sess); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	note, err := f.orch.SOAPFromText(ctx, "report", "sess-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if note != "PSYCHIATRIC SOAP NOTE" {
		t.Fatalf("unexpected note: %q", note)
	}

	stored, err := f.sessions.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if stored.SOAPNote != note {
		t.Fatal("expected soap note persisted on the session")
	}

	actions := actionSequence(f.auditLog.BySession("sess-1"))
	if len(actions) != 1 || actions[0] != audit.ActionSOAPGenerated {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestExportAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess := &session.Session{ID: "sess-1", Name: "Session"}
	if err := f.sessions.Put(ctx, sess); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	if _, err := f.orch.Export(ctx, "sess-1"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	actions := actionSequence(f.auditLog.BySession("sess-1"))
	if len(actions) != 1 || actions[0] != audit.ActionSessionExported {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestProcessRunsAreIsolatedPerSessionName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orch.Process(ctx, ProcessInput{Text: "note one"})
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := f.orch.Process(ctx, ProcessInput{Text: "note two"})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct session ids")
	}
	if first.Name == second.Name {
		t.Fatalf("expected generated names to differ, both %q", first.Name)
	}
}

func TestProcessDefaultNameUsesStoreCount(t *testing.T) {
	f := newFixture(t)

	sess, err := f.orch.Process(context.Background(), ProcessInput{Text: "note"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sess.Name != "Session 1" {
		t.Fatalf("unexpected default name: %q", sess.Name)
	}
}

func TestOrchestratorClockInjection(t *testing.T) {
	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(t)
	f.orch.now = func() time.Time { return fixed }

	sess, err := f.orch.Process(context.Background(), ProcessInput{Text: "note"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !sess.CreatedAt.Equal(fixed) || !sess.StoredAt.Equal(fixed) {
		t.Fatalf("expected injected clock timestamps, got %v / %v", sess.CreatedAt, sess.StoredAt)
	}
}
