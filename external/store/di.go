package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicksboson/CeriNote/internal/audit"
	"github.com/nicksboson/CeriNote/internal/config"
	"github.com/nicksboson/CeriNote/internal/consent"
	"github.com/nicksboson/CeriNote/internal/secure"
	"github.com/nicksboson/CeriNote/internal/session"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

// RegisterDI wires the session store, audit log and consent ledger.
// With DATABASE_URL set they share one Postgres pool; otherwise the
// in-memory base implementations are used.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*secure.Cipher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return secure.NewCipher(cfg.EncryptionKey)
	})

	do.Provide(injector, func(i do.Injector) (*pgxpool.Pool, error) {
		cfg := do.MustInvoke[*config.Config](i)
		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()

		p, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := RunMigration(ctx, p); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to run migration: %w", err)
		}
		return p, nil
	})

	do.Provide(injector, func(i do.Injector) (session.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		cipher := do.MustInvoke[*secure.Cipher](i)
		if cfg.DatabaseURL == "" {
			return NewMemorySessionStore(cipher), nil
		}
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}
		return NewPostgresSessionStore(pool, cipher), nil
	})

	do.Provide(injector, func(i do.Injector) (audit.Log, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.DatabaseURL == "" {
			return NewMemoryAuditLog(), nil
		}
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}
		return NewPostgresAuditLog(pool), nil
	})

	do.Provide(injector, func(i do.Injector) (consent.Ledger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.DatabaseURL == "" {
			return NewMemoryConsentLedger(), nil
		}
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}
		return NewPostgresConsentLedger(pool), nil
	})
}
