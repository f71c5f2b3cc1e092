package bot

// Block Kit payload structs. Only the shapes this bot actually sends
// are modeled; everything marshals with goccy/go-json in the chat
// client.

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func plainText(s string) *Text { return &Text{Type: "plain_text", Text: s} }

func markdownText(s string) Text { return Text{Type: "mrkdwn", Text: s} }

type SelectOption struct {
	Text  *Text  `json:"text"`
	Value string `json:"value"`
}

type Accessory struct {
	Type        string         `json:"type"`
	ActionID    string         `json:"action_id"`
	Placeholder *Text          `json:"placeholder,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
}

type Element struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Style    string `json:"style,omitempty"`
	Value    string `json:"value,omitempty"`
	ActionID string `json:"action_id,omitempty"`
}

type Block struct {
	Type      string     `json:"type"`
	BlockID   string     `json:"block_id,omitempty"`
	Text      *Text      `json:"text,omitempty"`
	Fields    []Text     `json:"fields,omitempty"`
	Elements  []Element  `json:"elements,omitempty"`
	Accessory *Accessory `json:"accessory,omitempty"`
	Element   *Element   `json:"element,omitempty"`
	Label     *Text      `json:"label,omitempty"`
}

// Message is what goes back through a response_url: either structured
// blocks or a plain-text fallback.
type Message struct {
	Text   string  `json:"text,omitempty"`
	Blocks []Block `json:"blocks,omitempty"`
}

func textMessage(s string) Message { return Message{Text: s} }

type ModalView struct {
	Type            string  `json:"type"`
	CallbackID      string  `json:"callback_id"`
	Title           *Text   `json:"title"`
	Submit          *Text   `json:"submit"`
	Close           *Text   `json:"close"`
	PrivateMetadata string  `json:"private_metadata"`
	Blocks          []Block `json:"blocks"`
}

func headerBlock(title string) Block {
	return Block{Type: "header", Text: plainText(title)}
}

func dividerBlock() Block {
	return Block{Type: "divider"}
}

func button(label, style, value, actionID string) Element {
	return Element{
		Type:     "button",
		Text:     plainText(label),
		Style:    style,
		Value:    value,
		ActionID: actionID,
	}
}
