// Package menu partitions the country listing into fixed-size pages
// for the selection UI.
package menu

import "epiwatch/internal/model"

type Option struct {
	Label string
	Value string
}

type Page struct {
	Index     int // 1-based
	HeadLabel string
	Options   []Option
}

// Paginate slices the listing into pages of pageSize entries. Each
// option and each page's head label resolve their own localized name
// through localize, which must fall back to the raw name when the
// lookup misses. Pages are recomputed on every call so they always
// reflect the current listing; an empty listing yields zero pages and
// the caller must render a distinct "nothing found" response.
func Paginate(listing []model.CountryListing, pageSize int, localize func(string) string) []Page {
	if len(listing) == 0 || pageSize < 1 {
		return nil
	}

	pageCount := (len(listing) + pageSize - 1) / pageSize
	pages := make([]Page, 0, pageCount)

	for m := 1; m <= pageCount; m++ {
		lo := (m - 1) * pageSize
		hi := m * pageSize
		if hi > len(listing) {
			hi = len(listing)
		}

		page := Page{
			Index:     m,
			HeadLabel: localize(listing[lo].Name),
			Options:   make([]Option, 0, hi-lo),
		}
		for _, entry := range listing[lo:hi] {
			page.Options = append(page.Options, Option{
				Label: localize(entry.Name),
				Value: entry.Name,
			})
		}

		pages = append(pages, page)
	}

	return pages
}
