package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// AIService answers support questions the rule-based chatbot cannot match.
type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

const supportSystemPrompt = `You are the support assistant for a creator content-review platform.
Creators upload short videos against campaign tasks; coordinators, clients and admins review,
approve or reject them; approved videos get a social media URL, insight screenshots and a
three-part score (consistency, creativity, content quality); a leaderboard ranks creators
by total score. Answer briefly and only about using the platform. If the question is
unrelated, point the user to the FAQ section of their dashboard.`

// Answer asks the model for a short support reply.
func (s *AIService) Answer(ctx context.Context, question string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: supportSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: question},
			},
			MaxTokens: 300,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
