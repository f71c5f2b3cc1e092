package bot

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"epiwatch/internal/model"

	"github.com/google/uuid"
)

type fakeChat struct {
	messages  []string
	channels  []string
	uploads   []string
	responses []Message
	views     []any
	triggers  []string
	err       error
}

func (f *fakeChat) PostMessage(channel, text string) error {
	f.channels = append(f.channels, channel)
	f.messages = append(f.messages, text)
	return f.err
}

func (f *fakeChat) UploadFile(channel, filePath, comment string) error {
	f.channels = append(f.channels, channel)
	f.uploads = append(f.uploads, filePath)
	return f.err
}

func (f *fakeChat) OpenView(triggerID string, view any) error {
	f.triggers = append(f.triggers, triggerID)
	f.views = append(f.views, view)
	return f.err
}

func (f *fakeChat) Respond(responseURL string, payload any) error {
	f.responses = append(f.responses, payload.(Message))
	return f.err
}

func (f *fakeChat) lastResponse() Message {
	if len(f.responses) == 0 {
		return Message{}
	}
	return f.responses[len(f.responses)-1]
}

type fakeDirectory struct {
	countries map[string]*model.Country
	listings  []model.CountryListing
	err       error
}

func (f *fakeDirectory) Resolve(identifier string) (*model.Country, error) {
	for key, c := range f.countries {
		if strings.EqualFold(key, identifier) || strings.EqualFold(c.Code, identifier) {
			return c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeDirectory) Localize(identifier string) string {
	if identifier == model.WorldTarget {
		return model.WorldLabel
	}
	if c, err := f.Resolve(identifier); err == nil && c.NameLocal != "" {
		return c.NameLocal
	}
	return identifier
}

func (f *fakeDirectory) ListAll() ([]model.CountryListing, error) {
	return f.listings, f.err
}

type fakeSummaries struct {
	summary *model.CountrySummary
	err     error
}

func (f *fakeSummaries) Current(country string) (*model.CountrySummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type fakeAnnotations struct {
	log       []model.Annotation
	insertErr error
}

func (f *fakeAnnotations) Get(country string) ([]model.Annotation, error) {
	var matched []model.Annotation
	for i := len(f.log) - 1; i >= 0; i-- {
		if f.log[i].Country == country {
			matched = append(matched, f.log[i])
		}
	}
	return matched, nil
}

func (f *fakeAnnotations) Insert(country string, timestamp time.Time, author, text string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.log = append(f.log, model.Annotation{Country: country, Timestamp: timestamp, Author: author, Text: text})
	return nil
}

// fakeRenderer writes real scratch files so the dispatch flow's
// delete-after-upload behavior is observable.
type fakeRenderer struct {
	dir       string
	renderErr error
	rendered  []string
}

func (f *fakeRenderer) ArtifactPath(name, ext string) string {
	return filepath.Join(f.dir, name+"-"+uuid.NewString()[:8]+"."+ext)
}

func (f *fakeRenderer) RenderWeeklyChart(outputPath string) error {
	return f.write(outputPath)
}

func (f *fakeRenderer) RenderMonthlyChart(country, outputPath string) error {
	return f.write(outputPath)
}

func (f *fakeRenderer) RenderCSV(country string) (string, error) {
	path := f.ArtifactPath(country+"-all", "csv")
	if err := f.write(path); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeRenderer) RenderPDF(generatedAt time.Time, country, chartImagePath string) (string, error) {
	path := f.ArtifactPath("Report-"+country, "pdf")
	if err := f.write(path); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeRenderer) write(path string) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.rendered = append(f.rendered, path)
	return os.WriteFile(path, []byte("artifact"), 0o644)
}
