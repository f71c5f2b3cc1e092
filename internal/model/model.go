package model

import "time"

// WorldTarget is the pseudo-country identifier the upstream source uses
// for the global aggregate. It has no row in the countries lookup
// table, so its display name is fixed here.
const (
	WorldTarget = "all"
	WorldLabel  = "全世界"
)

type Country struct {
	ID        int64
	Code      string
	NameEN    string
	NameLocal string
}

type CountryListing struct {
	Name string
	Code string
}

type CountrySummary struct {
	Name       string
	Population int64
	Active     int64
	Critical   int64
	Recovered  int64
	TotalCases int64
	Deaths     int64
	Tests      int64
}

// RawPoint is one entry of a cumulative counter series, already
// normalized from the source's M/D/YY key format.
type RawPoint struct {
	Date  time.Time
	Total int64
}

type RawSeries []RawPoint

type DeltaPoint struct {
	Date      time.Time
	NewCases  int64
	NewDeaths int64
}

type DeltaSeries []DeltaPoint

type Annotation struct {
	Country   string
	Timestamp time.Time
	Author    string
	Text      string
}
