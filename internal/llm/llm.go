// Package llm generates candidate quiz questions through an OpenAI-compatible
// API. Generated questions are candidates like any other ingest source and
// still go through validation before entering the accepted set.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pavelanni/quizforge/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint unreachable: %w", err)
	}
	return nil
}

// GenerateQuestions asks the model for count multiple-choice questions on the
// given topic at the given difficulty.
func (c *Client) GenerateQuestions(ctx context.Context, topic string, count int, difficulty model.Difficulty) ([]model.Question, error) {
	systemPrompt := buildGeneratePrompt(topic, count, difficulty)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: topic},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)

	questions, err := parseGenerated(raw, difficulty)
	if err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}
	return questions, nil
}

type generatedSet struct {
	Questions []generatedQuestion `json:"questions"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

func parseGenerated(raw string, difficulty model.Difficulty) ([]model.Question, error) {
	var set generatedSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, err
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("response contains no questions")
	}

	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}

	questions := make([]model.Question, 0, len(set.Questions))
	for _, g := range set.Questions {
		questions = append(questions, model.Question{
			Question:      g.Question,
			Type:          model.TypeMultipleChoice,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
			Difficulty:    difficulty,
		})
	}
	return questions, nil
}

func buildGeneratePrompt(topic string, count int, difficulty model.Difficulty) string {
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}

	var sb strings.Builder
	sb.WriteString("You are a quiz author. Write multiple-choice questions for a quiz video.\n\n")
	sb.WriteString("TOPIC: " + topic + "\n")
	sb.WriteString(fmt.Sprintf("NUMBER OF QUESTIONS: %d\n", count))
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %s\n\n", difficulty))

	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("- Each question must have exactly 4 answer options.\n")
	sb.WriteString("- The correct_answer must be copied verbatim from the options.\n")
	sb.WriteString("- Keep questions short enough to fit on a video frame.\n")
	sb.WriteString("- Include a one-sentence explanation of the correct answer.\n")
	sb.WriteString("\nRespond ONLY with a JSON object of this shape:\n")
	sb.WriteString(`{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "explanation": "..."}]}`)
	sb.WriteString("\n")

	return sb.String()
}
