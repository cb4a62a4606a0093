package lesson

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable means no AI provider is configured.
var ErrModelUnavailable = errors.New("AI model is unavailable, cannot generate content")

// GenerationError reports a failed lesson generation. The learner may
// retry by re-entering the lesson page.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("AI generation failed for %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Stage names the part of a bundle that failed to parse.
type Stage string

const (
	StageSections Stage = "sections"
	StageDiagram  Stage = "diagram"
	StageQuiz     Stage = "quiz"
)

// ParseError reports a bundle that does not follow the section contract.
// Raw holds the text that failed so it can be shown for debugging.
type ParseError struct {
	Stage Stage
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
