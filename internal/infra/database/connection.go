package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Driver do Postgres
)

// NewDBConnection abre a conexão e testa o Ping
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// Pool (essencial para produção)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema cria a tabela de candidatos se ainda não existir.
// Idempotente — roda em todo boot.
func EnsureSchema(db *sql.DB) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS candidates (
			candidate_id    TEXT PRIMARY KEY,
			full_name       TEXT,
			email           TEXT,
			source          TEXT,
			event_name      TEXT,
			role            TEXT,
			outreach_date   TEXT,
			interview_stage TEXT,
			touchpoints     INTEGER,
			hire_date       TEXT,
			notes           TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(ddl)
	return err
}
