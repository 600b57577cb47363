package llm

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message used by the triage service.
// Role must be one of: "system", "user", or "assistant".
type Message struct {
	Role    string
	Content string
}

// Client defines what the triage service needs from a language model: one
// completion over the full message history (system + prior turns + latest
// user message).  Urgency classification and summaries are computed by the
// triage service itself, so no other capability is required here.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// OpenAIClient calls the OpenAI API for chat responses.  API credentials and
// the model name are loaded from environment variables.
type OpenAIClient struct {
	client    *openai.Client
	chatModel string
}

// NewOpenAIClient constructs an OpenAI-backed LLM client. It reads the API key
// and model name from the environment and falls back to a sensible default.
func NewOpenAIClient() *OpenAIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	c := openai.NewClient(apiKey)

	chatModel := os.Getenv("OPENAI_MODEL_CHAT")
	if chatModel == "" {
		// default to a modern small model; can be overridden via env
		chatModel = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client:    c,
		chatModel: chatModel,
	}
}

// Chat sends the message history to the OpenAI chat completion API and returns
// the assistant's response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	// Convert to OpenAI message type
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    oaMsgs,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
