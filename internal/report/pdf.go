package report

import (
	"fmt"
	"time"

	"epiwatch/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderPDF composes the situation report for a country: title and
// generation time, a country table (name, population), a status table,
// the supplied chart image inline, and, when annotations exist, a
// second page listing them most recent first. The chart image must
// already exist; this operation never regenerates it. A failed summary
// fetch fails the whole render with no file produced.
func (r *Renderer) RenderPDF(generatedAt time.Time, country, chartImagePath string) (string, error) {
	if chartImagePath == "" {
		return "", fmt.Errorf("no chart image given: %w", model.ErrRenderFailure)
	}

	summary, err := r.source.Current(country)
	if err != nil {
		return "", err
	}

	annotations, err := r.annotations.Get(country)
	if err != nil {
		return "", err
	}

	path := r.ArtifactPath("Report-"+country, "pdf")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("COVID-19 situation report", true)
	pdf.SetAuthor("epiwatch", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "COVID-19 Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Generated at: "+generatedAt.Format(time.DateTime), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	drawTable(pdf, [][]string{
		{"Country", "Population"},
		{tr(r.localize(country)), GroupDigits(summary.Population)},
	}, []float64{70, 70}, true)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Current status", "", 1, "L", false, 0, "")
	drawTable(pdf, [][]string{
		{"Active", GroupDigits(summary.Active)},
		{"Critical", GroupDigits(summary.Critical)},
		{"Recovered", GroupDigits(summary.Recovered)},
		{"Total cases", GroupDigits(summary.TotalCases)},
		{"Total deaths", GroupDigits(summary.Deaths)},
		{"Tests", GroupDigits(summary.Tests)},
	}, []float64{50, 90}, false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Case history", "", 1, "L", false, 0, "")
	pdf.ImageOptions(chartImagePath, 15, pdf.GetY()+2, 180, 0, false,
		fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")

	if len(annotations) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, "Annotations", "", 1, "L", false, 0, "")

		rows := [][]string{{"Time", "Annotation"}}
		for _, a := range annotations {
			rows = append(rows, []string{a.Timestamp.Format(time.DateTime), tr(a.Text)})
		}
		drawTable(pdf, rows, []float64{50, 130}, true)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		removePartial(path)
		return "", fmt.Errorf("write pdf: %v: %w", err, model.ErrRenderFailure)
	}

	return path, nil
}

// drawTable lays out bordered rows; with header set, the first row is
// shaded and bold. Cells in the first column of header-less tables are
// shaded instead, matching a label/value layout.
func drawTable(pdf *fpdf.Fpdf, rows [][]string, widths []float64, header bool) {
	pdf.SetFillColor(238, 238, 255)

	for i, row := range rows {
		if header && i == 0 {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 12)
		}

		for j, cell := range row {
			fill := (header && i == 0) || (!header && j == 0)
			pdf.CellFormat(widths[j], 8, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(8)
	}
}
