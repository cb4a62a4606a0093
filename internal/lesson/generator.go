// Package lesson builds lesson bundle prompts, calls the AI provider for
// bundles and tutor replies, and parses bundles into their sections.
package lesson

import (
	"context"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/llm"
)

// Generator produces raw lesson bundles. A nil provider is allowed; every
// call then fails with ErrModelUnavailable.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a lesson bundle generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Available reports whether a provider is configured.
func (g *Generator) Available() bool {
	return g != nil && g.provider != nil
}

// Generate makes one blocking provider call and returns the raw bundle
// text. Failures are *GenerationError.
func (g *Generator) Generate(ctx context.Context, level curriculum.Level, topic string) (string, error) {
	if !g.Available() {
		return "", &GenerationError{Topic: topic, Err: ErrModelUnavailable}
	}

	ctx = llm.WithDefaultPurpose(ctx, llm.PurposeLesson)
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(level, topic)},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", &GenerationError{Topic: topic, Err: err}
	}
	if resp.Truncated() {
		return "", &GenerationError{Topic: topic, Err: &llm.ErrMaxTokensExceeded{Content: resp.Content}}
	}
	return resp.Content, nil
}
