package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"epiwatch/internal/model"
	"epiwatch/internal/series"
	"epiwatch/pkg/disease"
)

// RenderCSV exports the full available delta history for a country as
// a three-column table (date, new cases, new deaths) with a header row.
// It returns the generated file path; the name embeds a uniqueness
// token so successive or concurrent exports never overwrite each other.
func (r *Renderer) RenderCSV(country string) (string, error) {
	if country == "" {
		return "", fmt.Errorf("no country given: %w", model.ErrRenderFailure)
	}

	hist, err := r.source.Historical(country, disease.LastDaysAll)
	if err != nil {
		return "", err
	}
	deltas, err := series.Diff(hist.Cases, hist.Deaths)
	if err != nil {
		return "", err
	}

	path := r.ArtifactPath(country+"-all", "csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %v: %w", err, model.ErrRenderFailure)
	}

	writer := csv.NewWriter(file)
	writer.Write([]string{"Date", "Cases", "Deaths"})
	dates := series.Dates(deltas)
	for i, d := range deltas {
		writer.Write([]string{
			dates[i],
			strconv.FormatInt(d.NewCases, 10),
			strconv.FormatInt(d.NewDeaths, 10),
		})
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		file.Close()
		removePartial(path)
		return "", fmt.Errorf("write csv: %v: %w", err, model.ErrRenderFailure)
	}
	if err := file.Close(); err != nil {
		removePartial(path)
		return "", fmt.Errorf("close csv: %v: %w", err, model.ErrRenderFailure)
	}

	return path, nil
}
