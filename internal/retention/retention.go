// Package retention enforces the configured data retention policy:
// zero-retention audio deletion after processing and the periodic purge
// of expired sessions.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/media"
	"github.com/nicksboson/CeriNote/internal/metrics"
	"github.com/nicksboson/CeriNote/internal/session"
)

type Policy struct {
	sessions session.Store
	media    media.Store
	auditLog audit.Log
	metrics  *metrics.Metrics
	days     int
	now      func() time.Time
}

type Option func(*Policy)

// WithClock exists for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.now = now }
}

func NewPolicy(sessions session.Store, mediaStore media.Store, auditLog audit.Log, m *metrics.Metrics, days int, opts ...Option) *Policy {
	p := &Policy{
		sessions: sessions,
		media:    mediaStore,
		auditLog: auditLog,
		metrics:  m,
		days:     days,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Policy) Days() int { return p.days }

// ZeroRetention reports whether audio must be deleted as soon as
// processing finishes.
func (p *Policy) ZeroRetention() bool { return p.days == 0 }

// DeleteAudio removes the session's audio file and marks the session.
// Calling it on a session whose audio is already gone is a no-op, and
// the deleted state is never cleared once set.
func (p *Policy) DeleteAudio(ctx context.Context, sess *session.Session, reason string) error {
	if sess.AudioDeleted || sess.AudioFilename == "" {
		return nil
	}
	if err := p.media.Delete(sess.AudioFilename); err != nil {
		return fmt.Errorf("delete audio file: %w", err)
	}

	now := p.now()
	sess.AudioDeleted = true
	sess.AudioDeletedAt = &now
	if err := p.sessions.Put(ctx, sess); err != nil {
		return fmt.Errorf("persist audio deletion: %w", err)
	}

	p.auditLog.Append(audit.ActionAudioDeleted, sess.ID, map[string]string{"reason": reason})
	if p.metrics != nil {
		p.metrics.AudioDeleted.Inc()
	}
	slog.Info("session audio deleted", "session_id", sess.ID, "reason", reason)
	return nil
}

// PurgeExpired removes every session whose retention window has lapsed
// and returns how many were purged. Individual failures are logged and
// skipped so one broken session cannot stall the sweep.
func (p *Policy) PurgeExpired(ctx context.Context) (int, error) {
	sessions, err := p.sessions.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sessions for purge: %w", err)
	}

	now := p.now()
	purged := 0
	for _, sess := range sessions {
		// Zero-retention sessions have their audio deleted right after
		// processing; the sweep never removes them.
		days := sess.RetentionDays
		if days == 0 {
			continue
		}

		storedAt := sess.StoredAt
		if storedAt.IsZero() {
			storedAt = sess.CreatedAt
		}
		expiresAt := storedAt.Add(time.Duration(days) * 24 * time.Hour)
		if now.Before(expiresAt) {
			continue
		}

		if ref := sess.AudioRef(); ref != "" {
			if err := p.media.Delete(ref); err != nil {
				slog.Error("failed to delete expired audio", "session_id", sess.ID, "error", err)
				continue
			}
		}
		if _, err := p.sessions.Delete(ctx, sess.ID); err != nil {
			slog.Error("failed to delete expired session", "session_id", sess.ID, "error", err)
			continue
		}

		p.auditLog.Append(audit.ActionSessionDeleted, sess.ID, map[string]string{"reason": "retention_expired"})
		if p.metrics != nil {
			p.metrics.SessionsPurged.Inc()
		}
		purged++
		slog.Info("purged expired session", "session_id", sess.ID, "name", sess.Name)
	}

	if purged > 0 {
		slog.Info("retention sweep complete", "purged", purged)
	}
	return purged, nil
}

// Stats summarizes the stored data footprint.
type Stats struct {
	TotalSessions     int    `json:"totalSessions"`
	AudioFiles        int    `json:"audioFiles"`
	EncryptedSessions int    `json:"encryptedSessions"`
	RetentionDays     int    `json:"retentionDays"`
	UploadsDir        string `json:"uploadsDir"`
}

func (p *Policy) Stats(ctx context.Context, uploadsDir string) (Stats, error) {
	sessions, err := p.sessions.All(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		TotalSessions: len(sessions),
		RetentionDays: p.days,
		UploadsDir:    uploadsDir,
	}
	for _, sess := range sessions {
		if sess.AudioRef() != "" {
			stats.AudioFiles++
		}
		if sess.Transcription != "" {
			stats.EncryptedSessions++
		}
	}
	return stats, nil
}
