package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PG implements Store on a single Postgres table with lazy expiry.
type PG struct {
	db *sql.DB
}

// OpenPG connects to Postgres with pool defaults tuned for the intake path.
func OpenPG(dsn string) (*PG, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &PG{db: db}, nil
}

// NewPGFromDB wraps an existing handle; used by tests.
func NewPGFromDB(db *sql.DB) *PG { return &PG{db: db} }

func (p *PG) Close() error { return p.db.Close() }

func (p *PG) DB() *sql.DB { return p.db }

// EnsureSchema creates the kv table if it does not exist.
func (p *PG) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		create table if not exists kv (
			key        text primary key,
			value      text not null,
			expires_at timestamptz
		)`)
	return err
}

func (p *PG) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `
		select value from kv
		where key = $1 and (expires_at is null or expires_at > now())
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *PG) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	var expires sql.NullTime
	if ttl > 0 {
		expires = sql.NullTime{Time: time.Now().UTC().Add(ttl), Valid: true}
	}
	_, err := p.db.ExecContext(ctx, `
		insert into kv(key, value, expires_at)
		values ($1, $2, $3)
		on conflict (key) do update
		set value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expires)
	return err
}

func (p *PG) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `delete from kv where key = $1`, key)
	return err
}

// PurgeExpired removes rows past their expiry. Expiry is otherwise lazy:
// Get never returns expired rows, this just reclaims space.
func (p *PG) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `delete from kv where expires_at is not null and expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
