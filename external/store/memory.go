package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/secure"
	"github.com/nicksboson/CeriNote/internal/session"
)

// MemorySessionStore is the base in-memory session registry. Sensitive
// text fields are encrypted at rest when a cipher is configured and
// decrypted on read.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	order    []string
	cipher   *secure.Cipher
}

func NewMemorySessionStore(cipher *secure.Cipher) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*session.Session),
		cipher:   cipher,
	}
}

func (s *MemorySessionStore) Put(_ context.Context, sess *session.Session) error {
	stored := sess.Clone()
	if err := encryptArtifacts(s.cipher, stored); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[stored.ID]; !exists {
		s.order = append(s.order, stored.ID)
	}
	s.sessions[stored.ID] = stored
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	stored, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	out := stored.Clone()
	if err := decryptArtifacts(s.cipher, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemorySessionStore) List(_ context.Context) ([]session.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.Summary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Summarize())
	}
	return out, nil
}

func (s *MemorySessionStore) All(ctx context.Context) ([]*session.Session, error) {
	s.mu.RLock()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	s.mu.RUnlock()

	out := make([]*session.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.Get(ctx, id)
		if err != nil {
			if err == session.ErrNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	stored, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	out := stored.Clone()
	if err := decryptArtifacts(s.cipher, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemorySessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

func encryptArtifacts(cipher *secure.Cipher, sess *session.Session) error {
	if cipher == nil {
		return nil
	}
	fields := []*string{&sess.Transcription, &sess.StructuredDialogue, &sess.MedicalReport, &sess.SOAPNote}
	for _, field := range fields {
		if *field == "" {
			continue
		}
		encrypted, err := cipher.EncryptString(*field)
		if err != nil {
			return fmt.Errorf("encrypt session artifact: %w", err)
		}
		*field = encrypted
	}
	return nil
}

func decryptArtifacts(cipher *secure.Cipher, sess *session.Session) error {
	if cipher == nil {
		return nil
	}
	fields := []*string{&sess.Transcription, &sess.StructuredDialogue, &sess.MedicalReport, &sess.SOAPNote}
	for _, field := range fields {
		if *field == "" {
			continue
		}
		plaintext, err := cipher.DecryptString(*field)
		if err != nil {
			return fmt.Errorf("decrypt session artifact: %w", err)
		}
		*field = plaintext
	}
	return nil
}

// MemoryAuditLog is an append-only in-memory event sequence.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []audit.Entry
	now     func() time.Time
}

func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{now: time.Now}
}

// NewMemoryAuditLogWithClock exists for deterministic tests.
func NewMemoryAuditLogWithClock(now func() time.Time) *MemoryAuditLog {
	return &MemoryAuditLog{now: now}
}

func (l *MemoryAuditLog) Append(action audit.Action, sessionID string, metadata map[string]string) audit.Entry {
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}
	now := l.now()
	entry := audit.Entry{
		AuditID:   fmt.Sprintf("AUDIT-%d-%s", now.UnixMilli(), uuid.NewString()[:6]),
		Action:    action,
		SessionID: sessionID,
		Timestamp: now,
		Metadata:  meta,
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

func (l *MemoryAuditLog) BySession(sessionID string) []audit.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]audit.Entry, 0)
	for _, entry := range l.entries {
		if entry.SessionID == sessionID {
			out = append(out, entry)
		}
	}
	return out
}

func (l *MemoryAuditLog) All() []audit.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]audit.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *MemoryAuditLog) Summary() audit.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	summary := audit.Summary{
		TotalEvents:  len(l.entries),
		ActionCounts: make(map[audit.Action]int),
	}
	for _, entry := range l.entries {
		summary.ActionCounts[entry.Action]++
	}
	if len(l.entries) > 0 {
		oldest := l.entries[0].Timestamp
		newest := l.entries[len(l.entries)-1].Timestamp
		summary.OldestEvent = &oldest
		summary.NewestEvent = &newest
	}
	return summary
}

// MemoryConsentLedger keeps the latest consent record per session id.
type MemoryConsentLedger struct {
	mu      sync.RWMutex
	records map[string]consent.Record
	now     func() time.Time
}

func NewMemoryConsentLedger() *MemoryConsentLedger {
	return &MemoryConsentLedger{
		records: make(map[string]consent.Record),
		now:     time.Now,
	}
}

func (l *MemoryConsentLedger) LogConsent(input consent.LogConsentInput) consent.Record {
	record := consent.Record{
		SessionID:  input.SessionID,
		DoctorID:   input.DoctorID,
		PatientRef: input.PatientRef,
		IPHash:     secure.HashValue(input.IPAddress),
		Timestamp:  l.now(),
	}
	l.mu.Lock()
	l.records[input.SessionID] = record
	l.mu.Unlock()
	slog.Info("consent recorded", "session_id", input.SessionID, "doctor_id", input.DoctorID)
	return record
}

func (l *MemoryConsentLedger) Get(sessionID string) (consent.Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.records[sessionID]
	return record, ok
}

func (l *MemoryConsentLedger) Has(sessionID string) bool {
	_, ok := l.Get(sessionID)
	return ok
}

func (l *MemoryConsentLedger) Export(sessionID string) (consent.Export, bool) {
	record, ok := l.Get(sessionID)
	if !ok {
		return consent.Export{}, false
	}
	return consent.Export{Record: record, ExportedAt: l.now()}, true
}
