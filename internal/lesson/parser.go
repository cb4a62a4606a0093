package lesson

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DiagramBaseURL is the placeholder image service used for diagrams.
const DiagramBaseURL = "https://via.placeholder.com/600x250.png?text="

var diagramPattern = regexp.MustCompile(`(?s)## Diagram Description\s*(.*)`)

// Bundle is a lesson split into its five markdown sections.
type Bundle struct {
	Raw string

	Concept     string
	DiagramText string
	Code        string
	Practice    string
	QuizText    string
}

// Diagram is the extracted diagram description and its image link.
type Diagram struct {
	Text string
	URL  string
}

// Lesson is a fully parsed bundle.
type Lesson struct {
	*Bundle
	Diagram   Diagram
	Questions []Question
}

// Split divides a raw bundle on the section delimiter. Fewer than five
// parts is a *ParseError; parts beyond the fifth are ignored.
func Split(raw string) (*Bundle, error) {
	parts := strings.Split(raw, SectionDelimiter)
	if len(parts) < SectionCount {
		return nil, &ParseError{
			Stage: StageSections,
			Raw:   raw,
			Err:   fmt.Errorf("expected %d sections separated by %q, found %d", SectionCount, SectionDelimiter, len(parts)),
		}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return &Bundle{
		Raw:         raw,
		Concept:     parts[0],
		DiagramText: parts[1],
		Code:        parts[2],
		Practice:    parts[3],
		QuizText:    parts[4],
	}, nil
}

// Diagram extracts the diagram description that follows the
// "## Diagram Description" heading and builds the placeholder image URL.
func (b *Bundle) Diagram() (Diagram, error) {
	m := diagramPattern.FindStringSubmatch(b.DiagramText)
	if m == nil {
		return Diagram{}, &ParseError{
			Stage: StageDiagram,
			Raw:   b.DiagramText,
			Err:   fmt.Errorf("heading %q not found", "## Diagram Description"),
		}
	}
	text := strings.TrimSpace(m[1])
	return Diagram{
		Text: text,
		URL:  DiagramBaseURL + url.QueryEscape(text),
	}, nil
}

// Quiz extracts and validates the quiz questions from the fifth section.
func (b *Bundle) Quiz() ([]Question, error) {
	qs, err := parseQuiz(b.QuizText)
	if err != nil {
		return nil, &ParseError{Stage: StageQuiz, Raw: b.QuizText, Err: err}
	}
	return qs, nil
}

// Parse splits a raw bundle and extracts the diagram and quiz. It returns
// the first *ParseError encountered.
func Parse(raw string) (*Lesson, error) {
	b, err := Split(raw)
	if err != nil {
		return nil, err
	}
	d, err := b.Diagram()
	if err != nil {
		return nil, err
	}
	qs, err := b.Quiz()
	if err != nil {
		return nil, err
	}
	return &Lesson{Bundle: b, Diagram: d, Questions: qs}, nil
}
