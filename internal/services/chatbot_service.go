package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// intentRule maps trigger substrings to a canned reply. Rules are checked
// in order; the first rule with any matching keyword wins.
type intentRule struct {
	Keywords []string
	Reply    string
}

var defaultRules = []intentRule{
	{
		Keywords: []string{"hello", "hi", "hey"},
		Reply:    "Hi! I can help with uploads, reviews, scoring and the leaderboard. What do you need?",
	},
	{
		Keywords: []string{"upload", "submit"},
		Reply:    "To submit a video, open an ongoing task from your dashboard, pick your file and upload. Overdue tasks and tasks you already filled your quota for are closed.",
	},
	{
		Keywords: []string{"repost", "rejected"},
		Reply:    "If a video was rejected, use Repost on it to upload a replacement. The new submission starts back at Pending and is marked as a repost.",
	},
	{
		Keywords: []string{"score", "rating", "points"},
		Reply:    "Scores are three 1-5 ratings: consistency, creativity and content quality. Scoring opens once your approved video has its social media URL and at least one insight screenshot.",
	},
	{
		Keywords: []string{"insight", "screenshot", "analytics"},
		Reply:    "After approval, attach up to 3 insight screenshots from the video's detail view. They are required before your video can be scored.",
	},
	{
		Keywords: []string{"url", "link", "instagram", "social"},
		Reply:    "The social media URL can be added only while your video is in the Approved state, from the video's detail view.",
	},
	{
		Keywords: []string{"leaderboard", "rank"},
		Reply:    "The leaderboard ranks creators by the total of their video scores. Only fully scored videos count.",
	},
}

const fallbackReply = "I don't have an answer for that. Please check the FAQ section of your dashboard or reach out to your coordinator."

// ChatbotService dispatches support messages by keyword containment,
// first match wins, with an optional AI fallback. No state is carried
// between turns.
type ChatbotService struct {
	rules []intentRule
	ai    *AIService
}

// NewChatbotService creates a ChatbotService; ai may be nil.
func NewChatbotService(ai *AIService) *ChatbotService {
	return &ChatbotService{
		rules: defaultRules,
		ai:    ai,
	}
}

// Reply produces a response for one user message.
func (s *ChatbotService) Reply(ctx context.Context, message string) string {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if lowered == "" {
		return fallbackReply
	}

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Reply
			}
		}
	}

	if s.ai != nil {
		answer, err := s.ai.Answer(ctx, message)
		if err != nil {
			log.WithError(err).Warn("Chatbot AI fallback failed")
			return fallbackReply
		}
		if answer != "" {
			return answer
		}
	}

	return fallbackReply
}
