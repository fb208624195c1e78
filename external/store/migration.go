package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		audio_filename TEXT NOT NULL DEFAULT '',
		original_name TEXT NOT NULL DEFAULT '',
		mime_type TEXT NOT NULL DEFAULT '',
		size BIGINT NOT NULL DEFAULT 0,
		duration TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		stored_at TIMESTAMPTZ NOT NULL,
		transcribed_at TIMESTAMPTZ,
		report_generated_at TIMESTAMPTZ,
		audio_deleted_at TIMESTAMPTZ,
		transcription TEXT NOT NULL DEFAULT '',
		segments JSONB,
		structured_dialogue TEXT NOT NULL DEFAULT '',
		medical_report TEXT NOT NULL DEFAULT '',
		soap_note TEXT NOT NULL DEFAULT '',
		icd_codes JSONB,
		scale_scores JSONB,
		risk_flags JSONB,
		audio_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		retention_days INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions (created_at)`,
	`CREATE TABLE IF NOT EXISTS audit_entries (
		seq BIGSERIAL PRIMARY KEY,
		audit_id TEXT NOT NULL UNIQUE,
		action TEXT NOT NULL,
		session_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_entries_session ON audit_entries (session_id, seq)`,
	`CREATE TABLE IF NOT EXISTS consent_records (
		session_id TEXT PRIMARY KEY,
		doctor_id TEXT NOT NULL DEFAULT '',
		patient_ref TEXT NOT NULL DEFAULT '',
		ip_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
