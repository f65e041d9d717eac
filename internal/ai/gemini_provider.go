package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fdg312/fitcoach/internal/config"
)

// GeminiProvider phrases questions and explanations through the Generative
// Language API. Any failure bubbles up so the caller can fall back to the
// static prompts.
type GeminiProvider struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewGeminiProvider(cfg *config.Config) *GeminiProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	return &GeminiProvider{
		apiKey:      cfg.GeminiAPIKey,
		model:       cfg.GeminiModel,
		maxTokens:   cfg.AIMaxOutputTokens,
		temperature: cfg.AITemperature,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *GeminiProvider) NextQuestion(ctx context.Context, req QuestionRequest) (string, error) {
	prompt := fmt.Sprintf(
		"You are a friendly fitness coach collecting a user profile. "+
			"Ask the user one short question for the field %q. "+
			"The canonical question is: %q. Rephrase it warmly in one sentence, ask nothing else.",
		req.Field, FieldPrompt(req.Field, req.UserName),
	)
	return p.generate(ctx, prompt)
}

func (p *GeminiProvider) ExplainPlan(ctx context.Context, req ExplainRequest) (string, error) {
	prompt := fmt.Sprintf(
		"You are a fitness coach. The user %s has goal %s, diet %s, workout experience %s. "+
			"Their diet plan: %s. Their workout plan: %s. "+
			"Write 2-3 encouraging sentences explaining how the plan fits them. Plain text only.",
		req.UserName, req.Goal, req.DietType, req.WorkoutExperience,
		string(req.DietPlan), string(req.WorkoutPlan),
	)
	return p.generate(ctx, prompt)
}

func (p *GeminiProvider) FollowUp(ctx context.Context, req FollowUpRequest) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a fitness coach answering a follow-up question. ")
	sb.WriteString("User profile: ")
	sb.Write(req.Profile)
	sb.WriteString(". Plan summary: ")
	sb.WriteString(req.Explanation)
	for _, msg := range req.History {
		fmt.Fprintf(&sb, "\n%s: %s", msg.Role, msg.Content)
	}
	fmt.Fprintf(&sb, "\nQuestion: %s\nAnswer briefly, no medical advice.", req.Question)
	return p.generate(ctx, sb.String())
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	requestPayload := generateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     p.temperature,
			MaxOutputTokens: p.maxTokens,
		},
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		p.model,
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-goog-api-key", p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response does not contain candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("gemini response is empty")
	}
	return text, nil
}

type generateContentRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
