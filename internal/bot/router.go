// Package bot wires the chat platform's commands, block actions, and
// form submissions to the data, menu, annotation, and report layers.
package bot

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"epiwatch/internal/model"
)

// Stable action identifiers attached to UI controls at render time.
// Each maps 1:1 to one operation; the control's value carries the only
// context the stateless actions need.
const (
	ActionGetInfoAll    = "action-get-info-all"
	ActionGraphHistory  = "action-graph-history"
	ActionReportHistory = "action-report-history"
	ActionCSVGenerate   = "action-csv-generate"
	ActionComment       = "action-comment"
	ActionGetCountries  = "action-get-countries"
	ActionGetInfo       = "action-get-info"
	ActionSelectCountry = "action-select-country"

	CallbackPutComment = "callback-put-comment"

	commentBlockID  = "comment_block"
	commentActionID = "comment"
)

type Chat interface {
	PostMessage(channel, text string) error
	UploadFile(channel, filePath, comment string) error
	OpenView(triggerID string, view any) error
	Respond(responseURL string, payload any) error
}

type Directory interface {
	Resolve(identifier string) (*model.Country, error)
	Localize(identifier string) string
	ListAll() ([]model.CountryListing, error)
}

type Summaries interface {
	Current(country string) (*model.CountrySummary, error)
}

type Annotations interface {
	Get(country string) ([]model.Annotation, error)
	Insert(country string, timestamp time.Time, author, text string) error
}

type Renderer interface {
	ArtifactPath(name, ext string) string
	RenderWeeklyChart(outputPath string) error
	RenderMonthlyChart(country, outputPath string) error
	RenderCSV(country string) (string, error)
	RenderPDF(generatedAt time.Time, country, chartImagePath string) (string, error)
}

type Bot struct {
	chat        Chat
	directory   Directory
	summaries   Summaries
	annotations Annotations
	renderer    Renderer
	pageSize    int
	now         func() time.Time
}

func New(chat Chat, directory Directory, summaries Summaries, annotations Annotations, renderer Renderer, pageSize int) *Bot {
	return &Bot{
		chat:        chat,
		directory:   directory,
		summaries:   summaries,
		annotations: annotations,
		renderer:    renderer,
		pageSize:    pageSize,
		now:         time.Now,
	}
}

// Event is one inbound block action, reduced to what dispatch needs.
type Event struct {
	ActionID    string
	Value       string
	Channel     string
	User        string
	TriggerID   string
	ResponseURL string
}

// Dispatch routes a block action by its stable identifier. Every
// failure ends as a user-visible message on the originating channel;
// nothing is retried.
func (b *Bot) Dispatch(ev Event) {
	switch ev.ActionID {
	case ActionGetInfo, ActionGetInfoAll, ActionSelectCountry:
		b.respond(ev.ResponseURL, b.countryDetail(ev.Value))

	case ActionGetCountries:
		b.respond(ev.ResponseURL, b.countryMenu())

	case ActionGraphHistory:
		b.respond(ev.ResponseURL, textMessage("Generating chart..."))
		b.respond(ev.ResponseURL, b.countryDetail(ev.Value))
		b.deliverMonthlyChart(ev)

	case ActionReportHistory:
		b.respond(ev.ResponseURL, textMessage("Generating report..."))
		b.respond(ev.ResponseURL, b.countryDetail(ev.Value))
		b.deliverPDF(ev)

	case ActionCSVGenerate:
		b.respond(ev.ResponseURL, textMessage("Generating file..."))
		b.respond(ev.ResponseURL, b.countryDetail(ev.Value))
		b.deliverCSV(ev)

	case ActionComment:
		b.openCommentModal(ev)

	default:
		slog.Warn("unhandled action", "action_id", ev.ActionID)
	}
}

func (b *Bot) deliverMonthlyChart(ev Event) {
	path := b.renderer.ArtifactPath(ev.Value, "png")
	if err := b.renderer.RenderMonthlyChart(ev.Value, path); err != nil {
		slog.Error("error rendering chart", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The chart image could not be created."))
		return
	}
	defer os.Remove(path)

	if err := b.chat.UploadFile(ev.Channel, path, "Attaching the chart image."); err != nil {
		slog.Error("error uploading chart", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The chart image could not be uploaded."))
	}
}

func (b *Bot) deliverPDF(ev Event) {
	chartPath := b.renderer.ArtifactPath(ev.Value, "png")
	if err := b.renderer.RenderMonthlyChart(ev.Value, chartPath); err != nil {
		slog.Error("error rendering chart", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The chart image could not be created."))
		return
	}
	defer os.Remove(chartPath)

	pdfPath, err := b.renderer.RenderPDF(b.now(), ev.Value, chartPath)
	if err != nil {
		slog.Error("error rendering pdf", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The PDF report could not be created."))
		return
	}
	defer os.Remove(pdfPath)

	if err := b.chat.UploadFile(ev.Channel, pdfPath, "Attaching the PDF report."); err != nil {
		slog.Error("error uploading pdf", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The PDF report could not be uploaded."))
	}
}

func (b *Bot) deliverCSV(ev Event) {
	path, err := b.renderer.RenderCSV(ev.Value)
	if err != nil {
		slog.Error("error rendering csv", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The CSV file could not be created."))
		return
	}
	defer os.Remove(path)

	if err := b.chat.UploadFile(ev.Channel, path, "Attaching the CSV file."); err != nil {
		slog.Error("error uploading csv", "country", ev.Value, "error", err)
		b.respond(ev.ResponseURL, textMessage("The CSV file could not be uploaded."))
	}
}

// openCommentModal is phase one of the deferred comment flow: bundle
// the country, channel, and user into an InteractionContext and hand it
// to the form. Phase two happens in SubmitComment whenever (if ever)
// the form comes back.
func (b *Bot) openCommentModal(ev Event) {
	view, err := commentModal(InteractionContext{
		Country: ev.Value,
		Channel: ev.Channel,
		User:    ev.User,
	})
	if err != nil {
		slog.Error("error building comment modal", "country", ev.Value, "error", err)
		return
	}

	if err := b.chat.OpenView(ev.TriggerID, view); err != nil {
		slog.Error("error opening comment modal", "country", ev.Value, "error", err)
	}
}

// SubmitComment is phase two: the serialized context comes back
// unchanged with the submitted text, the annotation is stored, and a
// confirmation naming the country lands on the original channel.
func (b *Bot) SubmitComment(metadata, text string) {
	ctx, err := DecodeContext(metadata)
	if err != nil {
		slog.Error("error decoding interaction context", "error", err)
		return
	}

	msg := fmt.Sprintf("The annotation for %s was saved.", ctx.Country)
	if err := b.annotations.Insert(ctx.Country, b.now(), ctx.User, text); err != nil {
		slog.Error("error inserting annotation", "country", ctx.Country, "error", err)
		msg = fmt.Sprintf("The annotation for %s could not be saved.", ctx.Country)
	}

	if err := b.chat.PostMessage(ctx.Channel, msg); err != nil {
		slog.Error("error posting confirmation", "channel", ctx.Channel, "error", err)
	}
}

func (b *Bot) respond(responseURL string, payload Message) {
	if err := b.chat.Respond(responseURL, payload); err != nil {
		slog.Error("error responding", "error", err)
	}
}
