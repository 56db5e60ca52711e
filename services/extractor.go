package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// historyWindow is how many trailing conversation turns are sent along
// with the current message.
const historyWindow = 3

// ChatTurn is one prior message in a chat conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExtractedTrip is the structured trip request pulled out of free text.
// Date fields are YYYY-MM-DD strings; empty means the model could not
// determine them.
type ExtractedTrip struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
}

// MissingFields lists the required fields the extraction left empty.
func (t ExtractedTrip) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(t.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(t.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(t.DepartureDate) == "" {
		missing = append(missing, "departure_date")
	}
	return missing
}

// Extractor calls an OpenAI-compatible chat-completions API to turn free
// text into an ExtractedTrip. Without an API key it reports unavailable
// and callers fall back to heuristic parsing.
type Extractor struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewExtractorFromEnv builds an extractor from EXTRACT_* environment
// variables.
func NewExtractorFromEnv() *Extractor {
	model := os.Getenv("EXTRACT_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	baseURL := os.Getenv("EXTRACT_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeout := 15 * time.Second
	if s := os.Getenv("EXTRACT_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}

	e := NewExtractor(os.Getenv("EXTRACT_API_KEY"), model, baseURL, timeout)

	if e.Available() {
		log.Printf("✅ Extraction service configured with model %s", model)
	} else {
		log.Println("⚠️  EXTRACT_API_KEY not set — chat requests will use heuristic parsing")
	}

	return e
}

// NewExtractor builds an extractor with explicit settings.
func NewExtractor(apiKey, model, baseURL string, timeout time.Duration) *Extractor {
	return &Extractor{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Available reports whether the external service is configured.
func (e *Extractor) Available() bool {
	return e != nil && e.apiKey != ""
}

// Model returns the configured model name.
func (e *Extractor) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}

type completionRequest struct {
	Model       string     `json:"model"`
	Messages    []ChatTurn `json:"messages"`
	Temperature float64    `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const extractionPrompt = `You extract private charter flight requests. ` +
	`Reply with a single JSON object and nothing else, using exactly these keys: ` +
	`"origin" (airport code or city, "" if unknown), ` +
	`"destination" (airport code or city, "" if unknown), ` +
	`"departure_date" (YYYY-MM-DD, "" if unknown), ` +
	`"return_date" (YYYY-MM-DD, "" if one-way or unknown), ` +
	`"passengers" (integer, 1 if unstated). ` +
	`Today's date is %s.`

// Extract sends the message and the last turns of history to the external
// service and parses the reply. Any failure — transport, HTTP status,
// non-JSON reply — is returned as an error for the caller to fall back on;
// nothing is retried.
func (e *Extractor) Extract(ctx context.Context, message string, history []ChatTurn) (*ExtractedTrip, error) {
	if !e.Available() {
		return nil, fmt.Errorf("extraction service not configured")
	}

	messages := []ChatTurn{{
		Role:    "system",
		Content: fmt.Sprintf(extractionPrompt, time.Now().UTC().Format("2006-01-02")),
	}}
	if n := len(history); n > historyWindow {
		history = history[n-historyWindow:]
	}
	messages = append(messages, history...)
	messages = append(messages, ChatTurn{Role: "user", Content: message})

	jsonBody, err := json.Marshal(completionRequest{
		Model:       e.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction API error (%d): %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from extraction service")
	}

	var trip ExtractedTrip
	if err := json.Unmarshal([]byte(stripCodeFence(completion.Choices[0].Message.Content)), &trip); err != nil {
		return nil, fmt.Errorf("extraction reply was not valid JSON: %w", err)
	}

	if trip.Passengers <= 0 {
		trip.Passengers = 1
	}

	return &trip, nil
}

// stripCodeFence removes a markdown fence some models wrap JSON replies in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
