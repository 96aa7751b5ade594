package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	classifierAPIURL     = "https://api.anthropic.com/v1/messages"
	classifierAPIVersion = "2023-06-01"
	classifierModel      = "claude-haiku-4-5-20251001"
)

var (
	ErrNoClassifierKey       = errors.New("CLASSIFIER_API_KEY environment variable not set")
	ErrClassifierRequest     = errors.New("classifier API request failed")
	ErrClassifierBadResponse = errors.New("invalid classifier API response")
)

// Classifier suggests categories and tags for a bookmark with a single
// prompt/response call to a language-model API. No orchestration, no retry.
type Classifier struct {
	apiKey     string
	httpClient *http.Client
}

// Suggestion is the classifier's proposal for a bookmark.
type Suggestion struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

func NewClassifier() (*Classifier, error) {
	apiKey := os.Getenv("CLASSIFIER_API_KEY")
	if apiKey == "" {
		return nil, ErrNoClassifierKey
	}

	return &Classifier{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type classifierMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type classifierRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	Messages  []classifierMessage `json:"messages"`
}

type classifierResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// SuggestClassification asks the model for categories and tags for a URL.
func (c *Classifier) SuggestClassification(ctx context.Context, url, title string, existingCategories []string) (*Suggestion, error) {
	prompt := buildClassifierPrompt(url, title, existingCategories)

	reqBody := classifierRequest{
		Model:     classifierModel,
		MaxTokens: 256,
		Messages: []classifierMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, classifierAPIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", classifierAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierBadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrClassifierRequest, resp.StatusCode, body)
	}

	var apiResp classifierResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierBadResponse, err)
	}
	if len(apiResp.Content) == 0 {
		return nil, ErrClassifierBadResponse
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(apiResp.Content[0].Text), &suggestion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassifierBadResponse, err)
	}

	return &suggestion, nil
}

func buildClassifierPrompt(url, title string, existingCategories []string) string {
	var b strings.Builder
	b.WriteString("Suggest categories and tags for this bookmark.\n")
	fmt.Fprintf(&b, "URL: %s\n", url)
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if len(existingCategories) > 0 {
		fmt.Fprintf(&b, "Prefer these existing categories when they fit: %s\n",
			strings.Join(existingCategories, ", "))
	}
	b.WriteString(`Respond with only a JSON object: {"categories": [...], "tags": [...]}`)
	return b.String()
}
