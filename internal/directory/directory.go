// Package directory resolves country identifiers against the countries
// lookup table and lists the selectable countries from the upstream
// source. It is the single source of truth for localized labels.
package directory

import (
	"database/sql"
	"fmt"

	"epiwatch/internal/model"
)

// Lister supplies the upstream country listing. The lookup table is
// only a translation aid; the listing itself always comes from the
// data source.
type Lister interface {
	Countries() ([]model.CountryListing, error)
}

type Directory struct {
	db     *sql.DB
	lister Lister
}

func New(db *sql.DB, lister Lister) *Directory {
	return &Directory{db: db, lister: lister}
}

// Resolve matches an ISO code or an English display name, case
// insensitively, against the lookup table. Unresolved identifiers
// return model.ErrNotFound, never a hard failure: every caller falls
// back to displaying the raw identifier. Matching is parameterized, so
// names like "Côte d'Ivoire" need no escaping here.
func (d *Directory) Resolve(identifier string) (*model.Country, error) {
	if d.db == nil || identifier == "" {
		return nil, model.ErrNotFound
	}

	var c model.Country
	err := d.db.QueryRow(`
		SELECT id, iso_code, name_en, name_ja
		FROM countries
		WHERE LOWER(iso_code) = LOWER($1) OR LOWER(name_en) = LOWER($1)
	`, identifier).Scan(&c.ID, &c.Code, &c.NameEN, &c.NameLocal)

	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", identifier, err)
	}

	return &c, nil
}

// Localize returns the localized name for an identifier, or the
// identifier itself when it does not resolve. The world aggregate
// never resolves and gets its fixed label.
func (d *Directory) Localize(identifier string) string {
	if identifier == model.WorldTarget {
		return model.WorldLabel
	}
	c, err := d.Resolve(identifier)
	if err != nil || c.NameLocal == "" {
		return identifier
	}
	return c.NameLocal
}

// ListAll fetches every known country listing from the upstream source.
func (d *Directory) ListAll() ([]model.CountryListing, error) {
	return d.lister.Countries()
}
