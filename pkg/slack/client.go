// Package slack is the thin client for the chat platform's web API:
// post a message, upload a file, open a modal, or answer a
// response_url. The bot layer consumes it through a narrow interface,
// so nothing above this package knows about the wire format.
package slack

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const defaultAPIURL = "https://slack.com/api/"

type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// PostMessage sends a plain text message to a channel.
func (c *Client) PostMessage(channel, text string) error {
	payload := map[string]string{"channel": channel, "text": text}
	return c.callJSON("chat.postMessage", payload)
}

// OpenView opens a modal for the interaction identified by triggerID.
// The view payload is produced by the bot layer and passed through
// untouched.
func (c *Client) OpenView(triggerID string, view any) error {
	payload := map[string]any{"trigger_id": triggerID, "view": view}
	return c.callJSON("views.open", payload)
}

// UploadFile attaches a local file to a channel with an introductory
// comment. The file stays on disk; deleting it after delivery is the
// caller's job.
func (c *Client) UploadFile(channel, filePath, comment string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("upload open %s: %w", filePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("upload copy: %w", err)
	}
	writer.WriteField("channels", channel)
	writer.WriteField("initial_comment", comment)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("upload form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL+"files.upload", &body)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, "files.upload")
}

// Respond posts a payload back to the response_url of an inbound
// interaction. Used for both immediate acknowledgements and the later
// result messages of a deferred action.
func (c *Client) Respond(responseURL string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("respond encode: %w", err)
	}

	resp, err := c.httpClient.Post(responseURL, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("respond: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("respond: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) callJSON(method string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s encode: %w", method, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL+method, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	return c.do(req, method)
}

func (c *Client) do(req *http.Request, method string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", method, resp.StatusCode)
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%s decode: %w", method, err)
	}
	if !result.OK {
		return fmt.Errorf("%s: %s", method, result.Error)
	}

	return nil
}
