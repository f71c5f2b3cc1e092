// Package series turns cumulative counter feeds into aligned
// daily-delta series.
package series

import (
	"fmt"
	"time"

	"epiwatch/internal/model"
)

// DiffOne converts one cumulative counter series into day-over-day
// deltas. The first entry has no prior baseline and is dropped, so a
// caller that needs N deltas must request N+1 days of history. Negative
// deltas are passed through: the source issues retroactive corrections
// and clamping them would corrupt column sums.
func DiffOne(cumulative model.RawSeries) []int64 {
	var deltas []int64
	var previous int64
	havePrevious := false
	for _, point := range cumulative {
		if havePrevious {
			deltas = append(deltas, point.Total-previous)
		}
		previous = point.Total
		havePrevious = true
	}
	return deltas
}

// Diff zips the cases and deaths counter series into a DeltaSeries.
// The source feed is daily, gap-free, and counts cumulatively; a feed
// that is unordered, non-daily, misaligned between the two metrics, or
// carrying a negative total would make every computed delta wrong, so
// it is rejected outright with model.ErrDataUnavailable instead of
// being silently emitted.
func Diff(cases, deaths model.RawSeries) (model.DeltaSeries, error) {
	if len(cases) < 2 {
		return nil, fmt.Errorf("series too short (%d points): %w", len(cases), model.ErrDataUnavailable)
	}
	if len(deaths) != len(cases) {
		return nil, fmt.Errorf("cases/deaths length mismatch (%d vs %d): %w",
			len(cases), len(deaths), model.ErrDataUnavailable)
	}

	for i := range cases {
		if cases[i].Total < 0 || deaths[i].Total < 0 {
			return nil, fmt.Errorf("negative cumulative total at %s: %w",
				cases[i].Date.Format("2006-01-02"), model.ErrDataUnavailable)
		}
		if !cases[i].Date.Equal(deaths[i].Date) {
			return nil, fmt.Errorf("cases/deaths date mismatch at %s: %w",
				cases[i].Date.Format("2006-01-02"), model.ErrDataUnavailable)
		}
		if i > 0 && !cases[i].Date.Equal(cases[i-1].Date.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("feed not daily around %s: %w",
				cases[i].Date.Format("2006-01-02"), model.ErrDataUnavailable)
		}
	}

	caseDeltas := DiffOne(cases)
	deathDeltas := DiffOne(deaths)

	deltas := make(model.DeltaSeries, len(caseDeltas))
	for i := range caseDeltas {
		deltas[i] = model.DeltaPoint{
			Date:      cases[i+1].Date,
			NewCases:  caseDeltas[i],
			NewDeaths: deathDeltas[i],
		}
	}

	return deltas, nil
}

// Dates returns the delta dates formatted for axis labels and CSV rows.
func Dates(deltas model.DeltaSeries) []string {
	labels := make([]string, len(deltas))
	for i, d := range deltas {
		labels[i] = d.Date.Format(time.DateOnly)
	}
	return labels
}
