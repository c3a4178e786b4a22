// Package gemini calls the Google generative-language API to produce the
// companion's chatbot replies.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// maxMessageLength caps the user message embedded in a prompt.
	maxMessageLength = 1000
)

// persona frames every prompt so the bot answers as the robot companion.
const persona = "You are ORION, an AI assistant for a robot companion app. " +
	"You should be helpful, friendly, and knowledgeable about robotics, technology, and general topics. " +
	"Keep responses concise but informative."

// GenerationConfig mirrors the API's sampling parameters.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// DefaultGenerationConfig matches the mobile app's chat settings.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.7, TopK: 1, TopP: 1, MaxOutputTokens: 2048}
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	genCfg  GenerationConfig
	httpc   *http.Client
}

func New(apiKey, model string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		genCfg:  DefaultGenerationConfig(),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake API.
func NewWithBaseURL(baseURL, apiKey, model string) *Client {
	c := New(apiKey, model)
	c.baseURL = baseURL
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces a reply for one user message. The message is truncated
// to the chat length cap before being embedded in the persona prompt.
func (c *Client) Generate(ctx context.Context, message string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("no API key configured")
	}
	if len(message) > maxMessageLength {
		message = message[:maxMessageLength]
	}

	prompt := fmt.Sprintf("%s User message: %q", persona, message)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: c.genCfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", errors.New(out.Error.Message)
		}
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
