package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"milyoner_webapp/internal/domain"
)

// DefaultBaseURL is the Gemini REST endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrGeneration covers any provider failure; callers degrade to the stored
// pool or a fallback distribution instead of failing the session.
var ErrGeneration = errors.New("question generation failed")

// Client calls the Gemini generateContent API for question generation and
// audience-lifeline advice.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Gemini client. An empty apiKey yields a client whose
// calls always return ErrGeneration, which keeps the degradation path in one
// place.
func NewClient(apiKey, model string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(baseURL, apiKey, model string) *Client {
	c := NewClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateQuestion asks the model for one question of the given tier. The
// result is validated before use: four options with the correct answer among
// them, or ErrGeneration.
func (c *Client) GenerateQuestion(ctx context.Context, difficulty int, category string) (*domain.Question, error) {
	if category == "" {
		category = "general knowledge"
	}
	prompt := fmt.Sprintf(
		`Write one millionaire-style quiz question of difficulty %d (scale 1-15) in the %q category. `+
			`Answer strictly as JSON: {"text": "...", "options": ["A", "B", "C", "D"], "correct_answer": "...", "category": "..."}`,
		difficulty, category)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var q domain.Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, fmt.Errorf("%w: bad question json: %v", ErrGeneration, err)
	}
	q.Difficulty = difficulty
	if q.Category == "" {
		q.Category = category
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return &q, nil
}

// AdviseAudience asks the model for a percentage split over the options,
// biased toward the correct answer. The distribution is normalized to sum to
// exactly 100.
func (c *Client) AdviseAudience(ctx context.Context, q *domain.Question) (map[string]int, error) {
	prompt := fmt.Sprintf(
		`A quiz show asked: %q. The options are: %s. The correct answer is %q. `+
			`Act as the audience lifeline: assign each option a realistic percentage, higher for the correct one. `+
			`Answer strictly as a JSON object mapping each option text to an integer percentage.`,
		q.Text, strings.Join(q.Options, ", "), q.CorrectAnswer)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var advice map[string]int
	if err := json.Unmarshal([]byte(raw), &advice); err != nil {
		return nil, fmt.Errorf("%w: bad advice json: %v", ErrGeneration, err)
	}
	if len(advice) != domain.OptionCount {
		return nil, fmt.Errorf("%w: advice covers %d options", ErrGeneration, len(advice))
	}
	for _, opt := range q.Options {
		if _, ok := advice[opt]; !ok {
			return nil, fmt.Errorf("%w: advice missing option %q", ErrGeneration, opt)
		}
	}
	normalize(advice, q.CorrectAnswer)
	return advice, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: no api key configured", ErrGeneration)
	}

	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", ErrGeneration, resp.Status, string(msg))
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// normalize forces percentages non-negative and summing to 100; any rounding
// slack lands on the correct answer.
func normalize(advice map[string]int, correct string) {
	sum := 0
	for opt, pct := range advice {
		if pct < 0 {
			advice[opt] = 0
			pct = 0
		}
		sum += pct
	}
	if sum == 100 {
		return
	}
	if sum == 0 {
		advice[correct] = 100
		return
	}
	total := 0
	for opt, pct := range advice {
		scaled := pct * 100 / sum
		advice[opt] = scaled
		total += scaled
	}
	advice[correct] += 100 - total
}
