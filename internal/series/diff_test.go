package series

import (
	"errors"
	"testing"
	"time"

	"epiwatch/internal/model"

	"github.com/go-playground/assert/v2"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailySeries(start time.Time, totals ...int64) model.RawSeries {
	s := make(model.RawSeries, len(totals))
	for i, t := range totals {
		s[i] = model.RawPoint{Date: start.AddDate(0, 0, i), Total: t}
	}
	return s
}

func TestDiff_LengthAndDates(t *testing.T) {
	start := day(2021, time.March, 1)
	cases := dailySeries(start, 10, 15, 19, 30)
	deaths := dailySeries(start, 1, 1, 2, 2)

	deltas, err := Diff(cases, deaths)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(deltas))
	for i := 1; i < len(deltas); i++ {
		assert.Equal(t, deltas[i-1].Date.AddDate(0, 0, 1), deltas[i].Date)
	}
}

func TestDiff_Scenario(t *testing.T) {
	// cumulative cases {"3/1/21":10, "3/2/21":15, "3/3/21":19}
	start := day(2021, time.March, 1)
	cases := dailySeries(start, 10, 15, 19)
	deaths := dailySeries(start, 0, 0, 0)

	deltas, err := Diff(cases, deaths)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(deltas))
	assert.Equal(t, day(2021, time.March, 2), deltas[0].Date)
	assert.Equal(t, int64(5), deltas[0].NewCases)
	assert.Equal(t, day(2021, time.March, 3), deltas[1].Date)
	assert.Equal(t, int64(4), deltas[1].NewCases)
}

func TestDiffOne_MagnitudeInvariant(t *testing.T) {
	start := day(2022, time.January, 1)
	small := DiffOne(dailySeries(start, 100, 105, 103))
	large := DiffOne(dailySeries(start, 100000, 100005, 100003))

	assert.Equal(t, []int64{5, -2}, small)
	assert.Equal(t, small, large)
}

func TestDiff_NegativeCorrectionPassesThrough(t *testing.T) {
	start := day(2022, time.January, 1)
	deltas, err := Diff(
		dailySeries(start, 100, 105, 103),
		dailySeries(start, 10, 10, 9),
	)

	assert.Equal(t, nil, err)
	assert.Equal(t, int64(-2), deltas[1].NewCases)
	assert.Equal(t, int64(-1), deltas[1].NewDeaths)
}

func TestDiffOne_ZeroBaselineIsNotSkipped(t *testing.T) {
	start := day(2022, time.January, 1)

	deltas := DiffOne(dailySeries(start, 0, 3, 5))

	assert.Equal(t, []int64{3, 2}, deltas)
}

func TestDiff_RejectsNegativeCumulativeTotal(t *testing.T) {
	start := day(2022, time.January, 1)
	cases := dailySeries(start, 100, 105, 110)
	deaths := dailySeries(start, 5, -1, 6)

	_, err := Diff(cases, deaths)
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))

	_, err = Diff(dailySeries(start, -100, 105, 110), dailySeries(start, 5, 5, 6))
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))
}

func TestDiff_RejectsGappedFeed(t *testing.T) {
	start := day(2022, time.January, 1)
	cases := dailySeries(start, 1, 2, 3)
	cases[2].Date = cases[2].Date.AddDate(0, 0, 3)
	deaths := model.RawSeries{
		{Date: cases[0].Date}, {Date: cases[1].Date}, {Date: cases[2].Date},
	}

	_, err := Diff(cases, deaths)
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))
}

func TestDiff_RejectsMisalignedMetrics(t *testing.T) {
	start := day(2022, time.January, 1)
	_, err := Diff(dailySeries(start, 1, 2, 3), dailySeries(start, 1, 2))
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))

	_, err = Diff(dailySeries(start, 1, 2), dailySeries(start.AddDate(0, 0, 1), 1, 2))
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))
}

func TestDiff_RejectsTooShort(t *testing.T) {
	start := day(2022, time.January, 1)
	_, err := Diff(dailySeries(start, 7), dailySeries(start, 1))
	assert.Equal(t, true, errors.Is(err, model.ErrDataUnavailable))
}
