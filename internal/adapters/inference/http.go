package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"carelens/internal/core/sdoh"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	defaultModel   = "claude-3-5-haiku-latest"
	defaultTimeout = 12 * time.Second
	apiVersion     = "2023-06-01"
	maxTokens      = 1024
)

const systemPrompt = "You are a social-determinants-of-health screening assistant. " +
	"Given a care conversation transcript, identify SDOH risk indicators and respond " +
	"ONLY with JSON of the shape {\"issues\":[{\"code\",\"label\",\"severity\"," +
	"\"urgency\",\"status\",\"confidence\",\"rationale\",\"quote\",\"speaker\"}]}. " +
	"Use ICD-10-CM Z codes, severity in {low,moderate,high}, urgency in " +
	"{low,medium,high}, status in {current,resolved,historical}, confidence in [0,1]."

// httpClient is a messages-API provider making one bounded attempt per call
type httpClient struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

func newHTTPClient(cfg Config) *httpClient {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// DetectIssues implements Client
func (c *httpClient) DetectIssues(ctx context.Context, lines []sdoh.TranscriptLine) Outcome {
	body := map[string]any{
		"model":      c.model,
		"max_tokens": maxTokens,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(lines)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Outcome{Kind: OutcomeUnavailable, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return Outcome{Kind: OutcomeUnavailable, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Kind: OutcomeUnavailable, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: OutcomeUnavailable, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return Outcome{
			Kind: OutcomeUnavailable,
			Err:  fmt.Errorf("provider status %d: %s", resp.StatusCode, truncate(raw, 200)),
		}
	}

	var mr messagesResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		return Outcome{Kind: OutcomeMalformed, Err: fmt.Errorf("parse envelope: %w", err)}
	}
	if len(mr.Content) == 0 {
		return Outcome{Kind: OutcomeMalformed, Err: fmt.Errorf("empty content block")}
	}

	return ParseIssues(mr.Content[0].Text)
}

// ParseIssues interprets the provider's text block as the issues JSON shape.
// Exported so the controller tests can exercise the malformed branches
func ParseIssues(text string) Outcome {
	var parsed struct {
		Issues []Issue `json:"issues"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err != nil {
		return Outcome{Kind: OutcomeMalformed, Err: fmt.Errorf("parse issues: %w", err)}
	}
	if len(parsed.Issues) == 0 {
		return Outcome{Kind: OutcomeMalformed, Err: fmt.Errorf("no issues in response")}
	}
	return Outcome{Kind: OutcomeFindings, Issues: parsed.Issues}
}

func buildPrompt(lines []sdoh.TranscriptLine) string {
	var sb strings.Builder
	sb.WriteString("Transcript:\n")
	for _, ln := range lines {
		speaker := ln.Speaker
		if speaker == "" {
			speaker = "participant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, ln.Text)
	}
	sb.WriteString("\nIdentify SDOH risk indicators and answer with the issues JSON only.")
	return sb.String()
}

// stripFences removes a ```json ... ``` wrapper when the model adds one
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
