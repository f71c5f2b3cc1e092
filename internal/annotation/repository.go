// Package annotation is the append-only per-country note log, backed
// by the relational store. Notes are never updated or deleted.
package annotation

import (
	"database/sql"
	"fmt"
	"time"

	"epiwatch/internal/model"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns every annotation for a country, most recent first. With
// no configured store it reports an empty log rather than failing, so
// views simply render without an annotations section.
func (r *Repository) Get(country string) ([]model.Annotation, error) {
	if r.db == nil {
		return nil, nil
	}

	rows, err := r.db.Query(`
		SELECT a.datetime, a.user_name, a.comment
		FROM annotation AS a
		INNER JOIN countries AS c ON a.country_id = c.id
		WHERE LOWER(c.name_en) = LOWER($1)
		ORDER BY a.datetime DESC
	`, country)

	if err != nil {
		return nil, fmt.Errorf("get annotations for %q: %w", country, model.ErrPersistenceUnavailable)
	}
	defer rows.Close()

	var annotations []model.Annotation
	for rows.Next() {
		a := model.Annotation{Country: country}
		if err := rows.Scan(&a.Timestamp, &a.Author, &a.Text); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", model.ErrPersistenceUnavailable)
		}
		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read annotations: %w", model.ErrPersistenceUnavailable)
	}

	return annotations, nil
}

// Insert appends one annotation. The country must resolve in the
// lookup table first; an unresolved name is rejected so no orphan
// annotations exist. Free text travels through placeholders untouched,
// which keeps apostrophes intact without any escaping.
func (r *Repository) Insert(country string, timestamp time.Time, author, text string) error {
	if r.db == nil {
		return fmt.Errorf("annotation store not configured: %w", model.ErrPersistenceUnavailable)
	}

	var countryID int64
	err := r.db.QueryRow(`
		SELECT id FROM countries WHERE LOWER(name_en) = LOWER($1)
	`, country).Scan(&countryID)

	if err == sql.ErrNoRows {
		return fmt.Errorf("unknown country %q: %w", country, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("resolve country %q: %w", country, model.ErrPersistenceUnavailable)
	}

	_, err = r.db.Exec(`
		INSERT INTO annotation (country_id, datetime, user_name, comment)
		VALUES ($1, $2, $3, $4)
	`, countryID, timestamp, author, text)

	if err != nil {
		return fmt.Errorf("insert annotation for %q: %w", country, model.ErrPersistenceUnavailable)
	}

	return nil
}
