package bot

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// Routes mounts the webhook endpoints the chat platform calls.
func (b *Bot) Routes(r *gin.Engine) {
	r.POST("/slack/commands", b.handleCommand)
	r.POST("/slack/interactions", b.handleInteraction)
	r.POST("/slack/events", b.handleEvent)
	r.GET("/health", b.handleHealth)
}

func (b *Bot) handleCommand(c *gin.Context) {
	cmd := Command{
		Name:        c.PostForm("command"),
		Text:        c.PostForm("text"),
		Channel:     c.PostForm("channel_id"),
		User:        c.PostForm("user_name"),
		ResponseURL: c.PostForm("response_url"),
	}

	// Ack immediately; everything else goes back through response_url.
	c.String(http.StatusOK, "")
	c.Writer.Flush()

	b.HandleCommand(cmd)
}

type interactionPayload struct {
	Type      string `json:"type"`
	TriggerID string `json:"trigger_id"`
	User      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	ResponseURL string `json:"response_url"`
	Actions     []struct {
		ActionID       string `json:"action_id"`
		Value          string `json:"value"`
		SelectedOption struct {
			Value string `json:"value"`
		} `json:"selected_option"`
	} `json:"actions"`
	View struct {
		CallbackID      string `json:"callback_id"`
		PrivateMetadata string `json:"private_metadata"`
		State           struct {
			Values map[string]map[string]struct {
				Value string `json:"value"`
			} `json:"values"`
		} `json:"state"`
	} `json:"view"`
}

func (b *Bot) handleInteraction(c *gin.Context) {
	var payload interactionPayload
	if err := json.Unmarshal([]byte(c.PostForm("payload")), &payload); err != nil {
		slog.Error("error decoding interaction payload", "error", err)
		c.String(http.StatusBadRequest, "")
		return
	}

	c.String(http.StatusOK, "")
	c.Writer.Flush()

	switch payload.Type {
	case "block_actions":
		if len(payload.Actions) == 0 {
			slog.Warn("block_actions payload without actions")
			return
		}
		action := payload.Actions[0]
		value := action.Value
		if value == "" {
			value = action.SelectedOption.Value
		}
		b.Dispatch(Event{
			ActionID:    action.ActionID,
			Value:       value,
			Channel:     payload.Channel.ID,
			User:        payload.User.Username,
			TriggerID:   payload.TriggerID,
			ResponseURL: payload.ResponseURL,
		})

	case "view_submission":
		if payload.View.CallbackID != CallbackPutComment {
			slog.Warn("unhandled view callback", "callback_id", payload.View.CallbackID)
			return
		}
		text := payload.View.State.Values[commentBlockID][commentActionID].Value
		b.SubmitComment(payload.View.PrivateMetadata, text)

	default:
		slog.Warn("unhandled interaction type", "type", payload.Type)
	}
}

type eventPayload struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     struct {
		Type    string `json:"type"`
		Text    string `json:"text"`
		Channel string `json:"channel"`
		BotID   string `json:"bot_id"`
	} `json:"event"`
}

func (b *Bot) handleEvent(c *gin.Context) {
	var payload eventPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		slog.Error("error decoding event payload", "error", err)
		c.String(http.StatusBadRequest, "")
		return
	}

	// The platform verifies the endpoint by echoing a challenge.
	if payload.Type == "url_verification" {
		c.String(http.StatusOK, payload.Challenge)
		return
	}

	c.String(http.StatusOK, "")
	c.Writer.Flush()

	b.HandleMessage(payload.Event.Type, payload.Event.Text, payload.Event.Channel, payload.Event.BotID)
}

func (b *Bot) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
