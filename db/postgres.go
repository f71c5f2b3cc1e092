package db

import (
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// Connect opens a pooled connection to Postgres. An empty URL is not an
// error: the annotation store and the country lookup table simply run
// disabled, and every caller treats the nil handle as "nothing stored".
func Connect(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		slog.Warn("DATABASE_URL is not set, annotation store disabled")
		return nil, nil
	}

	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func Close(conn *sql.DB) {
	if conn != nil {
		conn.Close()
	}
}
