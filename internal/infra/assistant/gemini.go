package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const systemPrompt = `You are the assistant inside a personal CRM used for cold outreach to
small local businesses. Help the user write outreach copy, qualify
prospects, plan follow-ups and summarize their pipeline. Keep answers
short and practical. Never invent data about specific prospects.`

// Message is one prior turn of the conversation, replayed by the client.
type Message struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// Gemini wraps the GenAI SDK for the chat endpoint.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Chat replays the history and asks the model for the next turn. The
// conversation itself is stateless on the server.
func (g *Gemini) Chat(ctx context.Context, history []Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, genai.NewContentFromText(m.Content, roleFor(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}

	return text, nil
}

// roleFor maps the wire role to the SDK's. Unknown roles fall back to the
// user side so a malformed history never drops a turn.
func roleFor(role string) genai.Role {
	if role == "model" || role == "assistant" {
		return genai.RoleModel
	}
	return genai.RoleUser
}
