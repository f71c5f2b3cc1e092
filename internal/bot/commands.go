package bot

import (
	"log/slog"
	"os"
	"strings"
)

// Command is one inbound slash command.
type Command struct {
	Name        string
	Text        string
	Channel     string
	User        string
	ResponseURL string
}

func (b *Bot) HandleCommand(cmd Command) {
	switch cmd.Name {
	case "/hello":
		b.commandHello(cmd)
	case "/covid19":
		b.commandCovid19(cmd)
	case "/translate":
		b.commandTranslate(cmd)
	default:
		slog.Warn("unhandled command", "command", cmd.Name)
	}
}

func (b *Bot) greeting() string {
	switch hour := b.now().Hour(); {
	case hour >= 4 && hour < 10:
		return "Good morning"
	case hour >= 10 && hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// HandleMessage answers plain channel messages: one containing "hello"
// gets the time-of-day greeting, everything else is dropped. Messages
// authored by a bot are skipped so the reply cannot loop.
func (b *Bot) HandleMessage(eventType, text, channel, botID string) {
	if eventType != "message" || botID != "" {
		return
	}
	if !strings.Contains(strings.ToLower(text), "hello") {
		return
	}
	if err := b.chat.PostMessage(channel, b.greeting()+"!"); err != nil {
		slog.Error("error posting greeting", "channel", channel, "error", err)
	}
}

// commandHello greets by the local hour, then generates this week's
// chart for the home country and attaches it to the channel.
func (b *Bot) commandHello(cmd Command) {
	b.respond(cmd.ResponseURL, textMessage(b.greeting()+"!\nHere is this week's case history."))

	path := b.renderer.ArtifactPath("weekly-chart", "png")
	if err := b.renderer.RenderWeeklyChart(path); err != nil {
		slog.Error("error rendering weekly chart", "error", err)
		b.respond(cmd.ResponseURL, textMessage("The chart image could not be created."))
		return
	}
	defer os.Remove(path)

	if err := b.chat.UploadFile(cmd.Channel, path, "Attaching the chart image."); err != nil {
		slog.Error("error uploading weekly chart", "error", err)
		b.respond(cmd.ResponseURL, textMessage("The chart image could not be uploaded."))
	}
}

// commandCovid19 shows the country detail for its argument, or the
// selection menu when no argument is given.
func (b *Bot) commandCovid19(cmd Command) {
	if cmd.Text == "" {
		b.respond(cmd.ResponseURL, b.countryMenu())
		return
	}
	b.respond(cmd.ResponseURL, b.countryDetail(cmd.Text))
}

// commandTranslate echoes the localized name for a code or English
// name, falling back to reporting the raw input as not found.
func (b *Bot) commandTranslate(cmd Command) {
	country, err := b.directory.Resolve(cmd.Text)
	if err != nil {
		b.respond(cmd.ResponseURL, textMessage(cmd.Text+" was not found"))
		return
	}
	b.respond(cmd.ResponseURL, textMessage("[Input] "+cmd.Text+" [Localized] "+country.NameLocal))
}
