package bot

import (
	"os"
	"strings"
	"testing"
	"time"

	"epiwatch/internal/model"

	"github.com/go-playground/assert/v2"
)

func japanDirectory() *fakeDirectory {
	return &fakeDirectory{
		countries: map[string]*model.Country{
			"Japan": {ID: 1, Code: "JP", NameEN: "Japan", NameLocal: "日本"},
		},
		listings: []model.CountryListing{
			{Name: "Afghanistan", Code: "AF"},
			{Name: "Japan", Code: "JP"},
		},
	}
}

func japanSummary() *model.CountrySummary {
	return &model.CountrySummary{
		Name:       "Japan",
		Population: 125800000,
		Active:     1000,
		Critical:   20,
		Recovered:  33000,
		TotalCases: 34500,
		Deaths:     500,
		Tests:      2000000,
	}
}

type testBot struct {
	bot         *Bot
	chat        *fakeChat
	annotations *fakeAnnotations
	renderer    *fakeRenderer
}

func newTestBot(t *testing.T, summaries Summaries) *testBot {
	t.Helper()
	chat := &fakeChat{}
	annotations := &fakeAnnotations{}
	renderer := &fakeRenderer{dir: t.TempDir()}
	b := New(chat, japanDirectory(), summaries, annotations, renderer, 20)
	return &testBot{bot: b, chat: chat, annotations: annotations, renderer: renderer}
}

func TestCountryDetail_Blocks(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	msg := tb.bot.countryDetail("Japan")

	assert.Equal(t, 4, len(msg.Blocks)) // header, fields, actions, divider
	assert.Equal(t, "header", msg.Blocks[0].Type)
	assert.Equal(t, "[Country] 日本 [Population] 125,800,000", msg.Blocks[0].Text.Text)
	assert.Equal(t, 6, len(msg.Blocks[1].Fields))
	assert.Equal(t, "*Active:* 1,000", msg.Blocks[1].Fields[0].Text)
	assert.Equal(t, "actions", msg.Blocks[2].Type)
	assert.Equal(t, 7, len(msg.Blocks[2].Elements))
	assert.Equal(t, ActionGetInfoAll, msg.Blocks[2].Elements[0].ActionID)
	assert.Equal(t, "all", msg.Blocks[2].Elements[0].Value)
	assert.Equal(t, "Japan", msg.Blocks[2].Elements[1].Value)
	assert.Equal(t, "divider", msg.Blocks[3].Type)
}

func TestCountryDetail_ShowsLatestAnnotation(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})
	tb.annotations.Insert("Japan", time.Date(2021, time.April, 1, 9, 0, 0, 0, time.UTC), "ayako", "first note")
	tb.annotations.Insert("Japan", time.Date(2021, time.April, 2, 9, 0, 0, 0, time.UTC), "ayako", "second note")

	msg := tb.bot.countryDetail("Japan")

	assert.Equal(t, 5, len(msg.Blocks))
	annotationBlock := msg.Blocks[2]
	assert.Equal(t, "*Annotation:* second note", annotationBlock.Fields[1].Text)
}

func TestCountryDetail_WorldAggregateHeader(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	msg := tb.bot.countryDetail(model.WorldTarget)

	assert.Equal(t, "[Country] 全世界 [Population] 125,800,000", msg.Blocks[0].Text.Text)
}

func TestCountryDetail_UnresolvedFallsBackVerbatim(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{err: model.ErrDataUnavailable})

	msg := tb.bot.countryDetail("Wakanda")

	assert.Equal(t, 0, len(msg.Blocks))
	assert.Equal(t, "No information found for Wakanda", msg.Text)
}

func TestCountryMenu_BuildsSelect(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	msg := tb.bot.countryMenu()

	assert.Equal(t, 3, len(msg.Blocks)) // header, one page, divider
	section := msg.Blocks[1]
	assert.Equal(t, "static_select", section.Accessory.Type)
	assert.Equal(t, ActionSelectCountry, section.Accessory.ActionID)
	assert.Equal(t, 2, len(section.Accessory.Options))
	assert.Equal(t, "Afghanistan", section.Accessory.Options[0].Value)
	assert.Equal(t, "日本", section.Accessory.Options[1].Text.Text)
	assert.Equal(t, "Japan", section.Accessory.Options[1].Value)
}

func TestCountryMenu_EmptyListingIsNotFoundText(t *testing.T) {
	chat := &fakeChat{}
	b := New(chat, &fakeDirectory{}, &fakeSummaries{}, &fakeAnnotations{}, &fakeRenderer{dir: t.TempDir()}, 20)

	msg := b.countryMenu()

	assert.Equal(t, 0, len(msg.Blocks))
	assert.Equal(t, "No countries found", msg.Text)
}

func TestDispatch_CSVGeneratesUploadsAndDeletes(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	tb.bot.Dispatch(Event{
		ActionID:    ActionCSVGenerate,
		Value:       "Japan",
		Channel:     "C123",
		ResponseURL: "https://hooks.test/respond",
	})

	assert.Equal(t, "Generating file...", tb.chat.responses[0].Text)
	assert.Equal(t, 1, len(tb.chat.uploads))
	assert.Equal(t, true, strings.Contains(tb.chat.uploads[0], "Japan-all"))
	assert.Equal(t, "C123", tb.chat.channels[0])

	_, err := os.Stat(tb.chat.uploads[0])
	assert.Equal(t, true, os.IsNotExist(err)) // deleted after delivery
}

func TestDispatch_ChartFailureReportsError(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})
	tb.renderer.renderErr = model.ErrDataUnavailable

	tb.bot.Dispatch(Event{ActionID: ActionGraphHistory, Value: "Japan", Channel: "C123"})

	assert.Equal(t, 0, len(tb.chat.uploads))
	assert.Equal(t, "The chart image could not be created.", tb.chat.lastResponse().Text)
}

func TestDispatch_PDFUploadsReportAndCleansUp(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	tb.bot.Dispatch(Event{ActionID: ActionReportHistory, Value: "Japan", Channel: "C123"})

	assert.Equal(t, 1, len(tb.chat.uploads))
	assert.Equal(t, true, strings.Contains(tb.chat.uploads[0], "Report-Japan"))
	for _, rendered := range tb.renderer.rendered {
		_, err := os.Stat(rendered)
		assert.Equal(t, true, os.IsNotExist(err))
	}
}

func TestDispatch_CommentOpensModalWithContext(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	tb.bot.Dispatch(Event{
		ActionID:  ActionComment,
		Value:     "Japan",
		Channel:   "C123",
		User:      "ayako",
		TriggerID: "trigger-1",
	})

	assert.Equal(t, []string{"trigger-1"}, tb.chat.triggers)
	view := tb.chat.views[0].(ModalView)
	assert.Equal(t, CallbackPutComment, view.CallbackID)

	ctx, err := DecodeContext(view.PrivateMetadata)
	assert.Equal(t, nil, err)
	assert.Equal(t, InteractionContext{Country: "Japan", Channel: "C123", User: "ayako"}, ctx)
}

func TestSubmitComment_StoresAndConfirms(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})
	metadata, _ := InteractionContext{Country: "Japan", Channel: "C123", User: "ayako"}.Encode()

	tb.bot.SubmitComment(metadata, "It's fine")

	assert.Equal(t, 1, len(tb.annotations.log))
	saved := tb.annotations.log[0]
	assert.Equal(t, "Japan", saved.Country)
	assert.Equal(t, "ayako", saved.Author)
	assert.Equal(t, "It's fine", saved.Text)

	assert.Equal(t, []string{"C123"}, tb.chat.channels)
	assert.Equal(t, "The annotation for Japan was saved.", tb.chat.messages[0])

	// round trip: the new entry is the first one read back
	latest, _ := tb.annotations.Get("Japan")
	assert.Equal(t, "It's fine", latest[0].Text)
}

func TestSubmitComment_InsertFailureConfirmsFailure(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})
	tb.annotations.insertErr = model.ErrPersistenceUnavailable
	metadata, _ := InteractionContext{Country: "Japan", Channel: "C123", User: "ayako"}.Encode()

	tb.bot.SubmitComment(metadata, "It's fine")

	assert.Equal(t, "The annotation for Japan could not be saved.", tb.chat.messages[0])
}

func TestConcurrentRenders_DistinctArtifacts(t *testing.T) {
	tb := newTestBot(t, &fakeSummaries{summary: japanSummary()})

	first := tb.renderer.ArtifactPath("Japan", "png")
	second := tb.renderer.ArtifactPath("Japan", "png")

	assert.NotEqual(t, first, second)
}
