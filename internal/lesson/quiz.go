package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Question is one multiple-choice quiz item as emitted by the model.
type Question struct {
	Q       string   `json:"q"`
	Options []string `json:"o"`
	Answer  string   `json:"a"`
}

var (
	errNoQuizBlock  = errors.New("JSON block for quiz questions not found in AI response")
	fencedJSONBlock = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")
)

// quizSchemaURL names the compiled quiz schema resource.
const quizSchemaURL = "schema://datapath/quiz.json"

const quizSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["q", "o", "a"],
    "properties": {
      "q": {"type": "string", "minLength": 1},
      "o": {"type": "array", "minItems": 2, "items": {"type": "string"}},
      "a": {"type": "string"}
    }
  }
}`

var compiledQuizSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchema))
	if err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add quiz schema: %w", err)
	}
	return c.Compile(quizSchemaURL)
})

// parseQuiz finds the fenced json block, checks it against the quiz
// schema and requires every answer to be one of its options.
func parseQuiz(section string) ([]Question, error) {
	m := fencedJSONBlock.FindStringSubmatch(section)
	if m == nil {
		return nil, errNoQuizBlock
	}
	body := m[1]

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compiledQuizSchema()
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("quiz does not match schema: %w", err)
	}

	var qs []Question
	if err := json.Unmarshal([]byte(body), &qs); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	for i, q := range qs {
		if !slices.Contains(q.Options, q.Answer) {
			return nil, fmt.Errorf("question %d: answer %q is not one of its options", i+1, q.Answer)
		}
	}
	return qs, nil
}
