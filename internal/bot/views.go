package bot

import (
	"fmt"
	"log/slog"
	"time"

	"epiwatch/internal/menu"
	"epiwatch/internal/report"
)

// countryDetail builds the structured view for one country (or the
// world aggregate): header with localized name and population, the
// status fields, the newest annotation when one exists, and the action
// buttons. An identifier that yields no upstream data falls back to a
// plain-text payload naming the raw input verbatim.
func (b *Bot) countryDetail(country string) Message {
	summary, err := b.summaries.Current(country)
	if err != nil {
		slog.Error("error fetching country summary", "country", country, "error", err)
		return textMessage("No information found for " + country)
	}

	title := fmt.Sprintf("[Country] %s [Population] %s",
		b.directory.Localize(country), report.GroupDigits(summary.Population))

	blocks := []Block{
		headerBlock(title),
		{Type: "section", Fields: []Text{
			markdownText("*Active:* " + report.GroupDigits(summary.Active)),
			markdownText("*Critical:* " + report.GroupDigits(summary.Critical)),
			markdownText("*Recovered:* " + report.GroupDigits(summary.Recovered)),
			markdownText("*Total cases:* " + report.GroupDigits(summary.TotalCases)),
			markdownText("*Total deaths:* " + report.GroupDigits(summary.Deaths)),
			markdownText("*Tests:* " + report.GroupDigits(summary.Tests)),
		}},
	}

	annotations, err := b.annotations.Get(country)
	if err != nil {
		slog.Warn("error fetching annotations", "country", country, "error", err)
	} else if len(annotations) > 0 {
		latest := annotations[0]
		blocks = append(blocks, Block{Type: "section", Fields: []Text{
			markdownText("*Noted at:* " + latest.Timestamp.Format(time.DateTime)),
			markdownText("*Annotation:* " + latest.Text),
		}})
	}

	blocks = append(blocks, Block{Type: "actions", Elements: []Element{
		button("World", "primary", "all", ActionGetInfoAll),
		button("History chart", "danger", country, ActionGraphHistory),
		button("PDF report", "primary", country, ActionReportHistory),
		button("CSV export", "danger", country, ActionCSVGenerate),
		button("Comment", "primary", country, ActionComment),
		button("Back to countries", "", country, ActionGetCountries),
		button("Refresh", "", country, ActionGetInfo),
	}}, dividerBlock())

	return Message{Blocks: blocks}
}

// countryMenu builds the paginated selection view from the live
// upstream listing. An empty listing yields a plain-text "not found"
// payload, never an empty menu.
func (b *Bot) countryMenu() Message {
	listing, err := b.directory.ListAll()
	if err != nil {
		slog.Error("error fetching country listing", "error", err)
		return textMessage("No countries found")
	}

	pages := menu.Paginate(listing, b.pageSize, b.directory.Localize)
	if len(pages) == 0 {
		return textMessage("No countries found")
	}

	blocks := []Block{headerBlock("Countries")}
	for _, page := range pages {
		options := make([]SelectOption, 0, len(page.Options))
		for _, o := range page.Options {
			options = append(options, SelectOption{Text: plainText(o.Label), Value: o.Value})
		}

		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{Type: "mrkdwn", Text: fmt.Sprintf("[%d] Countries: %s ...", page.Index, page.HeadLabel)},
			Accessory: &Accessory{
				Type:        "static_select",
				ActionID:    ActionSelectCountry,
				Placeholder: plainText("Select a country"),
				Options:     options,
			},
		})
	}
	blocks = append(blocks, dividerBlock())

	return Message{Blocks: blocks}
}

// commentModal builds the deferred-action form, with the interaction
// context serialized into its private metadata for the round trip.
func commentModal(ctx InteractionContext) (ModalView, error) {
	metadata, err := ctx.Encode()
	if err != nil {
		return ModalView{}, err
	}

	return ModalView{
		Type:            "modal",
		CallbackID:      CallbackPutComment,
		Title:           plainText("Add annotation"),
		Submit:          plainText("Save"),
		Close:           plainText("Close"),
		PrivateMetadata: metadata,
		Blocks: []Block{{
			Type:    "input",
			BlockID: commentBlockID,
			Element: &Element{Type: "plain_text_input", ActionID: commentActionID},
			Label:   plainText("Annotation for " + ctx.Country),
		}},
	}, nil
}
