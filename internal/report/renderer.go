// Package report produces the derived artifacts: chart images, CSV
// exports, and PDF reports. Every render is a pure function of its
// inputs plus a fresh upstream fetch; nothing is cached and nothing
// partial is left behind on failure. Callers own delivery and must
// delete each artifact once it has been handed downstream.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"epiwatch/internal/model"
	"epiwatch/pkg/disease"

	"github.com/google/uuid"
)

type DataSource interface {
	Historical(country, lastdays string) (*disease.History, error)
	Current(country string) (*model.CountrySummary, error)
}

type AnnotationSource interface {
	Get(country string) ([]model.Annotation, error)
}

type Renderer struct {
	source      DataSource
	annotations AnnotationSource
	localize    func(string) string
	dir         string
	homeCountry string
}

func NewRenderer(source DataSource, annotations AnnotationSource, localize func(string) string, dir, homeCountry string) *Renderer {
	return &Renderer{
		source:      source,
		annotations: annotations,
		localize:    localize,
		dir:         dir,
		homeCountry: homeCountry,
	}
}

// ArtifactPath builds a scratch-file path that is unique per
// invocation: the generation timestamp plus a random fragment, so two
// concurrent renders for the same country can never collide, even
// inside the same second.
func (r *Renderer) ArtifactPath(name, ext string) string {
	stamp := time.Now().Format("20060102150405")
	uid := uuid.NewString()[:8]
	base := fmt.Sprintf("%s-%s-%s.%s", sanitize(name), stamp, uid, ext)
	return filepath.Join(r.dir, base)
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	return strings.ReplaceAll(name, " ", "_")
}

// removePartial discards a half-written artifact so a failed render
// never leaves a file for the caller to pick up.
func removePartial(path string) {
	if path != "" {
		os.Remove(path)
	}
}
