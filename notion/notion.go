// Package notion writes thoughts as pages of a Notion database through the
// public REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/CedricFinance/thought_catcher/model"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"

	// APIKeyEnv holds the integration token. It is read on every request.
	APIKeyEnv = "NOTION_API_KEY"
)

type Config struct {
	DatabaseID string
	// TimeZone is attached to the Deadline property when the due date has a
	// time of day, e.g. "US/Mountain".
	TimeZone string
	BaseURL  string
	Version  string
}

type Client struct {
	databaseID string
	timeZone   string
	baseURL    string
	version    string
	apiKey     func() string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	c := &Client{
		databaseID: cfg.DatabaseID,
		timeZone:   cfg.TimeZone,
		baseURL:    cfg.BaseURL,
		version:    cfg.Version,
		apiKey:     func() string { return os.Getenv(APIKeyEnv) },
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}

	return c
}

// APIError is a non-2xx answer of the Notion API. Its message is the one
// Notion returned so it can be relayed to the sender as is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notion returned %d", e.Status)
	}
	return e.Message
}

type createPageRequest struct {
	Parent     parent              `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type property struct {
	Title       []richText `json:"title,omitempty"`
	MultiSelect []option   `json:"multi_select,omitempty"`
	Select      *option    `json:"select,omitempty"`
	Date        *date      `json:"date,omitempty"`
}

type richText struct {
	Text text `json:"text"`
}

type text struct {
	Content string `json:"content"`
}

type option struct {
	Name string `json:"name"`
}

type date struct {
	Start    string `json:"start"`
	TimeZone string `json:"time_zone,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateThought creates one page in the configured database.
func (c *Client) CreateThought(ctx context.Context, thought model.Thought) error {
	apiKey := c.apiKey()
	if apiKey == "" {
		return fmt.Errorf("notion: %s is not set", APIKeyEnv)
	}

	body, err := json.Marshal(createPageRequest{
		Parent:     parent{DatabaseID: c.databaseID},
		Properties: pageProperties(thought, c.timeZone),
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Notion-Version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}

		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Message
		}

		return apiErr
	}

	return nil
}

// pageProperties maps the fields present on thought to database properties.
// Absent fields are left out so the database defaults apply.
func pageProperties(thought model.Thought, timeZone string) map[string]property {
	properties := map[string]property{}

	if thought.Name != "" {
		properties["Name"] = property{Title: []richText{{Text: text{Content: thought.Name}}}}
	}

	if len(thought.Tags) > 0 {
		tags := make([]option, len(thought.Tags))
		for i, tag := range thought.Tags {
			tags[i] = option{Name: tag}
		}
		properties["Tags"] = property{MultiSelect: tags}
	}

	if thought.Status != "" {
		properties["Status"] = property{Select: &option{Name: thought.Status}}
	}

	if thought.HasDueDate() {
		deadline := &date{Start: thought.DueDate}
		if thought.DueDateHasTime() {
			deadline.TimeZone = timeZone
		}
		properties["Deadline"] = property{Date: deadline}
	}

	return properties
}
