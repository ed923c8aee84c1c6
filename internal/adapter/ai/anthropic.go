package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const (
	defaultAnthropicModel  = "claude-sonnet-4-20250514"
	analysisMaxTokens      = 1024
	reviewMaxTokens        = 2048
	defaultMaxRetries      = 2
	maxTags                = 5
	maxReviewTasksInPrompt = 200
)

var ErrNoJSON = errors.New("analysis response contained no JSON object")

type AnthropicConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	HTTPClient *http.Client
}

// AnthropicAnalyzer implements ports.Analyzer with the Anthropic Messages API.
type AnthropicAnalyzer struct {
	client anthropic.Client
	model  string
}

var _ ports.Analyzer = (*AnthropicAnalyzer)(nil)

func NewAnthropicAnalyzer(cfg AnthropicConfig) *AnthropicAnalyzer {
	if cfg.Model == "" {
		cfg.Model = defaultAnthropicModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &AnthropicAnalyzer{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}
}

type taskAnalysisPayload struct {
	Description       string   `json:"description"`
	Priority          string   `json:"priority"`
	Tags              []string `json:"tags"`
	Context           string   `json:"context"`
	Project           *string  `json:"project"`
	EstimatedDuration *float64 `json:"estimated_duration"`
}

type reviewPayload struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

func (a *AnthropicAnalyzer) AnalyzeTask(ctx context.Context, input string) (domain.TaskAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this task input and extract:
1. A brief description (1-2 sentences)
2. Priority level (low/medium/high/urgent)
3. Relevant tags (technology, category, etc. - max 5)
4. Context/category (e.g., "Development", "Bug Fix", "Feature", "Documentation")
5. Project name (if identifiable)
6. Estimated duration in minutes

Task input: %q

Respond in JSON format:
{
  "description": "Brief description",
  "priority": "medium",
  "tags": ["tag1", "tag2"],
  "context": "Category",
  "project": "Project name or null",
  "estimated_duration": 30
}`, input)

	var payload taskAnalysisPayload
	if err := a.completeJSON(ctx, prompt, analysisMaxTokens, &payload); err != nil {
		return domain.TaskAnalysis{}, err
	}
	analysis := payload.toDomain()
	if analysis.Description == "" {
		analysis.Description = input
	}
	return analysis, nil
}

func (a *AnthropicAnalyzer) AnalyzeCommit(ctx context.Context, commit domain.GitCommit) (domain.TaskAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this git commit and extract:
1. Relevant tags (technology, feature area, etc.)
2. Priority level (low/medium/high/urgent)
3. Context description
4. Estimated duration in minutes (if applicable)

Commit:
SHA: %s
Message: %s
Author: %s
Files changed: %s

Respond in JSON format:
{
  "tags": ["tag1", "tag2"],
  "priority": "medium",
  "context": "Brief description",
  "estimated_duration": 30
}`, commit.SHA, commit.Message, commit.Author, strings.Join(commit.FilesChanged, ", "))

	var payload taskAnalysisPayload
	if err := a.completeJSON(ctx, prompt, analysisMaxTokens, &payload); err != nil {
		return domain.TaskAnalysis{}, err
	}
	analysis := payload.toDomain()
	if analysis.Context == "" {
		analysis.Context = commit.Message
	}
	return analysis, nil
}

func (a *AnthropicAnalyzer) Review(ctx context.Context, tasks []domain.Task, period domain.ReviewPeriod, start, end time.Time) (domain.ReviewNarrative, error) {
	var sb strings.Builder
	for i, task := range tasks {
		if i == maxReviewTasksInPrompt {
			sb.WriteString(fmt.Sprintf("- ... and %d more tasks\n", len(tasks)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, priority: %s, tags: %s)\n",
			task.Title, task.Status, task.Priority, strings.Join(task.Tags, ", ")))
	}

	prompt := fmt.Sprintf(`Generate a %s review for the following tasks between %s and %s:

%s
Provide:
1. A comprehensive summary (2-3 paragraphs)
2. Key insights (3-5 bullet points)

Respond in JSON format:
{
  "summary": "...",
  "insights": ["insight1", "insight2", "insight3"]
}`, period, start.Format(domain.DateLayout), end.Format(domain.DateLayout), sb.String())

	var payload reviewPayload
	if err := a.completeJSON(ctx, prompt, reviewMaxTokens, &payload); err != nil {
		return domain.ReviewNarrative{}, err
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return domain.ReviewNarrative{}, fmt.Errorf("anthropic: review response has an empty summary")
	}
	if payload.Insights == nil {
		payload.Insights = []string{}
	}
	return domain.ReviewNarrative{Summary: payload.Summary, Insights: payload.Insights}, nil
}

func (a *AnthropicAnalyzer) completeJSON(ctx context.Context, prompt string, maxTokens int64, out any) error {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return fmt.Errorf("anthropic: send request: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	raw, err := ExtractJSON(text.String())
	if err != nil {
		return fmt.Errorf("anthropic: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("anthropic: decode response: %w", err)
	}
	return nil
}

// ExtractJSON returns the span from the first '{' to the last '}' of text.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

func (p taskAnalysisPayload) toDomain() domain.TaskAnalysis {
	tags := domain.NormalizeTags(p.Tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	analysis := domain.TaskAnalysis{
		Description: strings.TrimSpace(p.Description),
		Priority:    domain.ParsePriority(p.Priority),
		Tags:        tags,
		Context:     strings.TrimSpace(p.Context),
	}
	if p.Project != nil {
		project := strings.TrimSpace(*p.Project)
		if project != "" && !strings.EqualFold(project, "null") {
			analysis.Project = &project
		}
	}
	if p.EstimatedDuration != nil && *p.EstimatedDuration >= 0 {
		minutes := int(math.Round(*p.EstimatedDuration))
		analysis.EstimatedDuration = &minutes
	}
	return analysis
}
