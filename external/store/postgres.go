package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/secure"
	"github.com/nicksboson/CeriNote/internal/session"
	"github.com/nicksboson/CeriNote/internal/transcriber"
)

const pgWriteTimeout = 10 * time.Second

// PostgresSessionStore is the durable substitution for the in-memory
// session registry.
type PostgresSessionStore struct {
	pool   *pgxpool.Pool
	cipher *secure.Cipher
}

func NewPostgresSessionStore(pool *pgxpool.Pool, cipher *secure.Cipher) *PostgresSessionStore {
	return &PostgresSessionStore{pool: pool, cipher: cipher}
}

func (s *PostgresSessionStore) Put(ctx context.Context, sess *session.Session) error {
	stored := sess.Clone()
	if err := encryptArtifacts(s.cipher, stored); err != nil {
		return err
	}
	segments, err := json.Marshal(stored.TranscriptionSegments)
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	icdCodes, err := json.Marshal(stored.ICDCodes)
	if err != nil {
		return fmt.Errorf("marshal icd codes: %w", err)
	}
	scaleScores, err := json.Marshal(stored.ScaleScores)
	if err != nil {
		return fmt.Errorf("marshal scale scores: %w", err)
	}
	riskFlags, err := json.Marshal(stored.RiskFlags)
	if err != nil {
		return fmt.Errorf("marshal risk flags: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (
			id, name, audio_filename, original_name, mime_type, size, duration,
			created_at, stored_at, transcribed_at, report_generated_at, audio_deleted_at,
			transcription, segments, structured_dialogue, medical_report, soap_note,
			icd_codes, scale_scores, risk_flags, audio_deleted, retention_days
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			audio_filename = EXCLUDED.audio_filename,
			transcribed_at = EXCLUDED.transcribed_at,
			report_generated_at = EXCLUDED.report_generated_at,
			audio_deleted_at = EXCLUDED.audio_deleted_at,
			transcription = EXCLUDED.transcription,
			segments = EXCLUDED.segments,
			structured_dialogue = EXCLUDED.structured_dialogue,
			medical_report = EXCLUDED.medical_report,
			soap_note = EXCLUDED.soap_note,
			icd_codes = EXCLUDED.icd_codes,
			scale_scores = EXCLUDED.scale_scores,
			risk_flags = EXCLUDED.risk_flags,
			audio_deleted = EXCLUDED.audio_deleted,
			retention_days = EXCLUDED.retention_days`,
		stored.ID, stored.Name, stored.AudioFilename, stored.OriginalName, stored.MimeType,
		stored.Size, stored.Duration, stored.CreatedAt, stored.StoredAt, stored.TranscribedAt,
		stored.ReportGeneratedAt, stored.AudioDeletedAt, stored.Transcription, segments,
		stored.StructuredDialogue, stored.MedicalReport, stored.SOAPNote,
		icdCodes, scaleScores, riskFlags, stored.AudioDeleted, stored.RetentionDays)
	return err
}

const sessionColumns = `id, name, audio_filename, original_name, mime_type, size, duration,
	created_at, stored_at, transcribed_at, report_generated_at, audio_deleted_at,
	transcription, segments, structured_dialogue, medical_report, soap_note,
	icd_codes, scale_scores, risk_flags, audio_deleted, retention_days`

func (s *PostgresSessionStore) scanSession(row pgx.Row) (*session.Session, error) {
	var sess session.Session
	var segments, icdCodes, scaleScores, riskFlags []byte
	err := row.Scan(
		&sess.ID, &sess.Name, &sess.AudioFilename, &sess.OriginalName, &sess.MimeType,
		&sess.Size, &sess.Duration, &sess.CreatedAt, &sess.StoredAt, &sess.TranscribedAt,
		&sess.ReportGeneratedAt, &sess.AudioDeletedAt, &sess.Transcription, &segments,
		&sess.StructuredDialogue, &sess.MedicalReport, &sess.SOAPNote,
		&icdCodes, &scaleScores, &riskFlags, &sess.AudioDeleted, &sess.RetentionDays)
	if err != nil {
		return nil, err
	}
	if len(segments) > 0 && string(segments) != "null" {
		var parsed []transcriber.Segment
		if err := json.Unmarshal(segments, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal segments: %w", err)
		}
		sess.TranscriptionSegments = parsed
	}
	if err := unmarshalOptional(icdCodes, &sess.ICDCodes); err != nil {
		return nil, fmt.Errorf("unmarshal icd codes: %w", err)
	}
	if err := unmarshalOptional(scaleScores, &sess.ScaleScores); err != nil {
		return nil, fmt.Errorf("unmarshal scale scores: %w", err)
	}
	if err := unmarshalOptional(riskFlags, &sess.RiskFlags); err != nil {
		return nil, fmt.Errorf("unmarshal risk flags: %w", err)
	}
	if err := decryptArtifacts(s.cipher, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func unmarshalOptional[T any](raw []byte, target **T) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var parsed T
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	*target = &parsed
	return nil
}

func (s *PostgresSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	sess, err := s.scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *PostgresSessionStore) List(ctx context.Context) ([]session.Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, duration, created_at,
			transcription <> '' AS has_transcription,
			medical_report <> '' AS has_report
		 FROM sessions ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []session.Summary
	for rows.Next() {
		var summary session.Summary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Duration,
			&summary.CreatedAt, &summary.HasTranscription, &summary.HasReport); err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *PostgresSessionStore) All(ctx context.Context) ([]*session.Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*session.Session
	for rows.Next() {
		sess, err := s.scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *PostgresSessionStore) Delete(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *PostgresSessionStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}

// PostgresAuditLog is the durable audit log. Writes are best-effort; a
// failed insert is logged and the entry is still returned so the
// pipeline never fails on auditing.
type PostgresAuditLog struct {
	pool *pgxpool.Pool
}

func NewPostgresAuditLog(pool *pgxpool.Pool) *PostgresAuditLog {
	return &PostgresAuditLog{pool: pool}
}

func (s *PostgresAuditLog) Append(action audit.Action, sessionID string, metadata map[string]string) audit.Entry {
	now := time.Now()
	entry := audit.Entry{
		AuditID:   fmt.Sprintf("AUDIT-%d-%s", now.UnixMilli(), uuid.NewString()[:6]),
		Action:    action,
		SessionID: sessionID,
		Timestamp: now,
		Metadata:  metadata,
	}
	meta, err := json.Marshal(entry.Metadata)
	if err != nil {
		slog.Error("failed to marshal audit metadata", "error", err, "action", action)
		meta = []byte(`{}`)
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgWriteTimeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO audit_entries (audit_id, action, session_id, created_at, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.AuditID, string(entry.Action), entry.SessionID, entry.Timestamp, meta); err != nil {
		slog.Error("failed to append audit entry", "error", err, "action", action, "session_id", sessionID)
	}
	return entry
}

func (s *PostgresAuditLog) BySession(sessionID string) []audit.Entry {
	ctx, cancel := context.WithTimeout(context.Background(), pgWriteTimeout)
	defer cancel()
	rows, err := s.pool.Query(ctx,
		`SELECT audit_id, action, session_id, created_at, metadata
		 FROM audit_entries WHERE session_id = $1 ORDER BY seq ASC`, sessionID)
	if err != nil {
		slog.Error("failed to query audit entries", "error", err, "session_id", sessionID)
		return nil
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

func (s *PostgresAuditLog) All() []audit.Entry {
	ctx, cancel := context.WithTimeout(context.Background(), pgWriteTimeout)
	defer cancel()
	rows, err := s.pool.Query(ctx,
		`SELECT audit_id, action, session_id, created_at, metadata
		 FROM audit_entries ORDER BY seq ASC`)
	if err != nil {
		slog.Error("failed to query audit entries", "error", err)
		return nil
	}
	defer rows.Close()
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows pgx.Rows) []audit.Entry {
	var out []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var action string
		var meta []byte
		if err := rows.Scan(&entry.AuditID, &action, &entry.SessionID, &entry.Timestamp, &meta); err != nil {
			slog.Error("failed to scan audit entry", "error", err)
			return out
		}
		entry.Action = audit.Action(action)
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &entry.Metadata)
		}
		out = append(out, entry)
	}
	return out
}

func (s *PostgresAuditLog) Summary() audit.Summary {
	entries := s.All()
	summary := audit.Summary{
		TotalEvents:  len(entries),
		ActionCounts: make(map[audit.Action]int),
	}
	for _, entry := range entries {
		summary.ActionCounts[entry.Action]++
	}
	if len(entries) > 0 {
		oldest := entries[0].Timestamp
		newest := entries[len(entries)-1].Timestamp
		summary.OldestEvent = &oldest
		summary.NewestEvent = &newest
	}
	return summary
}

// PostgresConsentLedger is the durable consent ledger, one row per
// session id with latest-write-wins semantics.
type PostgresConsentLedger struct {
	pool *pgxpool.Pool
}

func NewPostgresConsentLedger(pool *pgxpool.Pool) *PostgresConsentLedger {
	return &PostgresConsentLedger{pool: pool}
}

func (s *PostgresConsentLedger) LogConsent(input consent.LogConsentInput) consent.Record {
	record := consent.Record{
		SessionID:  input.SessionID,
		DoctorID:   input.DoctorID,
		PatientRef: input.PatientRef,
		IPHash:     secure.HashValue(input.IPAddress),
		Timestamp:  time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgWriteTimeout)
	defer cancel()
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO consent_records (session_id, doctor_id, patient_ref, ip_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id) DO UPDATE SET
			doctor_id = EXCLUDED.doctor_id,
			patient_ref = EXCLUDED.patient_ref,
			ip_hash = EXCLUDED.ip_hash,
			created_at = EXCLUDED.created_at`,
		record.SessionID, record.DoctorID, record.PatientRef, record.IPHash, record.Timestamp); err != nil {
		slog.Error("failed to store consent record", "error", err, "session_id", input.SessionID)
	}
	return record
}

func (s *PostgresConsentLedger) Get(sessionID string) (consent.Record, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), pgWriteTimeout)
	defer cancel()
	row := s.pool.QueryRow(ctx,
		`SELECT session_id, doctor_id, patient_ref, ip_hash, created_at
		 FROM consent_records WHERE session_id = $1`, sessionID)
	var record consent.Record
	if err := row.Scan(&record.SessionID, &record.DoctorID, &record.PatientRef,
		&record.IPHash, &record.Timestamp); err != nil {
		if err != pgx.ErrNoRows {
			slog.Error("failed to query consent record", "error", err, "session_id", sessionID)
		}
		return consent.Record{}, false
	}
	return record, true
}

func (s *PostgresConsentLedger) Has(sessionID string) bool {
	_, ok := s.Get(sessionID)
	return ok
}

func (s *PostgresConsentLedger) Export(sessionID string) (consent.Export, bool) {
	record, ok := s.Get(sessionID)
	if !ok {
		return consent.Export{}, false
	}
	return consent.Export{Record: record, ExportedAt: time.Now()}, true
}
