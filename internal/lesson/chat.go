package lesson

import (
	"context"
	"fmt"

	"github.com/abhisek/datapath/internal/llm"
)

// Chat roles as stored in a transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in the tutor chat transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OfflineReply is the tutor's answer when no provider is configured.
const OfflineReply = "The AI is currently offline."

// ErrorReply formats the tutor's answer when the provider call fails.
func ErrorReply(err error) string {
	return fmt.Sprintf("Sorry, I encountered an error. Please try again. Error: %v", err)
}

// Tutor answers follow-up questions about a lesson.
type Tutor struct {
	provider llm.Provider
	cfg      Config
}

// NewTutor creates a tutor. A nil provider answers OfflineReply.
func NewTutor(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

// Reply asks the provider for the assistant's next message. It always
// returns text to show in the transcript: the reply on success, otherwise
// OfflineReply or ErrorReply. err is non-nil when the text is a fallback.
func (t *Tutor) Reply(ctx context.Context, topic, bundle string, transcript []Turn) (string, error) {
	if t == nil || t.provider == nil {
		return OfflineReply, ErrModelUnavailable
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeChat)
	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      buildChatSystemPrompt(topic, bundle),
		Messages:    chatMessages(transcript),
		MaxTokens:   t.cfg.ChatMaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return ErrorReply(err), err
	}
	return resp.Content, nil
}

// chatMessages converts a transcript to provider messages. Leading
// assistant turns (the greeting) are dropped because providers expect
// the conversation to open with the user.
func chatMessages(transcript []Turn) []llm.Message {
	start := 0
	for start < len(transcript) && transcript[start].Role == RoleAssistant {
		start++
	}

	out := make([]llm.Message, 0, len(transcript)-start)
	for _, t := range transcript[start:] {
		role := llm.RoleUser
		if t.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: t.Content})
	}
	return out
}
