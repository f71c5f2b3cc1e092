package report

import (
	"fmt"
	"os"

	"epiwatch/internal/model"
	"epiwatch/internal/series"

	charts "github.com/vicanso/go-charts/v2"
)

const (
	chartWidth  = 1000
	chartHeight = 800
)

// RenderWeeklyChart draws the last seven days of new cases for the
// configured home country as an area-filled line and writes it as a
// PNG to outputPath. Eight days of history are requested because the
// first cumulative point only serves as the diff baseline.
func (r *Renderer) RenderWeeklyChart(outputPath string) error {
	hist, err := r.source.Historical(r.homeCountry, "8")
	if err != nil {
		return err
	}
	deltas, err := series.Diff(hist.Cases, hist.Deaths)
	if err != nil {
		return err
	}

	values := make([]float64, len(deltas))
	for i, d := range deltas {
		values[i] = float64(d.NewCases)
	}

	opt := charts.ChartOption{
		Width:  chartWidth,
		Height: chartHeight,
		Type:   charts.ChartOutputPNG,
		Title: charts.TitleOption{
			Text: "New cases this week (" + r.localize(r.homeCountry) + ")",
		},
		XAxis:      charts.NewXAxisOption(series.Dates(deltas)),
		Legend:     charts.NewLegendOption([]string{"New cases"}, charts.PositionLeft),
		FillArea:   true,
		SeriesList: charts.NewSeriesListDataFromValues([][]float64{values}, charts.ChartTypeLine),
	}

	return r.writeChart(opt, outputPath)
}

// RenderMonthlyChart draws thirty days of new cases as bars and new
// deaths as a line on a secondary axis, with a combined legend, and
// writes it as a PNG to outputPath.
func (r *Renderer) RenderMonthlyChart(country, outputPath string) error {
	if country == "" {
		return fmt.Errorf("no country given: %w", model.ErrRenderFailure)
	}

	hist, err := r.source.Historical(country, "31")
	if err != nil {
		return err
	}
	deltas, err := series.Diff(hist.Cases, hist.Deaths)
	if err != nil {
		return err
	}

	caseValues := make([]float64, len(deltas))
	deathValues := make([]float64, len(deltas))
	for i, d := range deltas {
		caseValues[i] = float64(d.NewCases)
		deathValues[i] = float64(d.NewDeaths)
	}

	seriesList := charts.NewSeriesListDataFromValues([][]float64{caseValues}, charts.ChartTypeBar)
	deathSeries := charts.NewSeriesFromValues(deathValues, charts.ChartTypeLine)
	deathSeries.AxisIndex = 1
	seriesList = append(seriesList, deathSeries)

	opt := charts.ChartOption{
		Width:  chartWidth,
		Height: chartHeight,
		Type:   charts.ChartOutputPNG,
		Title: charts.TitleOption{
			Text: "Daily new cases and deaths (" + r.localize(country) + ")",
		},
		XAxis:        charts.NewXAxisOption(series.Dates(deltas)),
		Legend:       charts.NewLegendOption([]string{"New cases", "New deaths"}, charts.PositionCenter),
		YAxisOptions: []charts.YAxisOption{{}, {}},
		SeriesList:   seriesList,
	}

	return r.writeChart(opt, outputPath)
}

func (r *Renderer) writeChart(opt charts.ChartOption, outputPath string) error {
	painter, err := charts.Render(opt)
	if err != nil {
		return fmt.Errorf("render chart: %v: %w", err, model.ErrRenderFailure)
	}

	buf, err := painter.Bytes()
	if err != nil {
		return fmt.Errorf("encode chart: %v: %w", err, model.ErrRenderFailure)
	}

	if err := os.WriteFile(outputPath, buf, 0o644); err != nil {
		removePartial(outputPath)
		return fmt.Errorf("write chart: %v: %w", err, model.ErrRenderFailure)
	}

	return nil
}
