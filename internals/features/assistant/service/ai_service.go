package service

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"rohisku_backend/internals/configs"
)

// Completer adalah pintu ke LLM; satu method supaya gampang dipalsukan di test.
type Completer interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string, temperature float32, maxTokens int) (string, error)
}

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	ChatbotModel    = "openai/gpt-oss-120b"
	SummarizerModel = "llama-3.1-8b-instant"
	FormatterModel  = "llama-3.1-8b-instant"

	completionTimeout = 30 * time.Second
)

// GroqCompleter: Completer di atas endpoint OpenAI-compatible milik Groq.
type GroqCompleter struct {
	client *openai.Client
}

func NewGroqCompleter() (*GroqCompleter, error) {
	if configs.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not configured")
	}
	cfg := openai.DefaultConfig(configs.GroqAPIKey)
	cfg.BaseURL = groqBaseURL
	return &GroqCompleter{client: openai.NewClientWithConfig(cfg)}, nil
}

func (g *GroqCompleter) Complete(ctx context.Context, model, systemPrompt, userMessage string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		log.Println("[ERROR] AI completion failed:", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
