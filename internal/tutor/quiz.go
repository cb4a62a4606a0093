package tutor

import (
	"errors"
	"fmt"

	"github.com/abhisek/datapath/internal/lesson"
)

// SaveStatus tracks the RecordProgress effect of a finished quiz.
type SaveStatus string

const (
	SaveNone    SaveStatus = ""
	SavePending SaveStatus = "pending"
	SaveOK      SaveStatus = "saved"
	SaveFailed  SaveStatus = "failed"
)

var (
	errQuizNotRunning = errors.New("quiz is not running")
	errNotAnOption    = errors.New("answer is not one of the options")
)

// Quiz runs one attempt over a question list: answering(i) until Submit,
// then finished.
type Quiz struct {
	Questions []lesson.Question

	// Answers holds the selected option per question; nil is unanswered.
	Answers []*string

	Cursor   int
	Finished bool
	Score    int

	// LoadErr is set when the bundle's quiz section could not be parsed.
	LoadErr error

	Save    SaveStatus
	SaveErr error
}

// Start begins a fresh attempt.
func (q *Quiz) Start(questions []lesson.Question) {
	*q = Quiz{
		Questions: questions,
		Answers:   make([]*string, len(questions)),
	}
}

// Fail records a quiz that could not be loaded.
func (q *Quiz) Fail(err error) {
	*q = Quiz{LoadErr: err}
}

// Running reports whether questions are loaded and not yet submitted.
func (q *Quiz) Running() bool {
	return q.LoadErr == nil && len(q.Questions) > 0 && !q.Finished
}

// syncAnswers resets answers to unanswered when their length drifts from
// the question count.
func (q *Quiz) syncAnswers() {
	if len(q.Answers) != len(q.Questions) {
		q.Answers = make([]*string, len(q.Questions))
	}
}

// Current returns the question under the cursor.
func (q *Quiz) Current() (lesson.Question, bool) {
	if q.Cursor < 0 || q.Cursor >= len(q.Questions) {
		return lesson.Question{}, false
	}
	return q.Questions[q.Cursor], true
}

// Selected returns the answer recorded for the current question.
func (q *Quiz) Selected() (string, bool) {
	q.syncAnswers()
	if q.Cursor < 0 || q.Cursor >= len(q.Answers) || q.Answers[q.Cursor] == nil {
		return "", false
	}
	return *q.Answers[q.Cursor], true
}

// Select records answer for the current question.
func (q *Quiz) Select(answer string) error {
	if !q.Running() {
		return errQuizNotRunning
	}
	q.syncAnswers()
	cur, _ := q.Current()
	for _, o := range cur.Options {
		if o == answer {
			a := answer
			q.Answers[q.Cursor] = &a
			return nil
		}
	}
	return fmt.Errorf("question %d: %w", q.Cursor+1, errNotAnOption)
}

func (q *Quiz) CanPrev() bool   { return q.Running() && q.Cursor > 0 }
func (q *Quiz) CanNext() bool   { return q.Running() && q.Cursor < len(q.Questions)-1 }
func (q *Quiz) CanSubmit() bool { return q.Running() && q.Cursor == len(q.Questions)-1 }

// Prev moves back one question. It reports whether the cursor moved.
func (q *Quiz) Prev() bool {
	if !q.CanPrev() {
		return false
	}
	q.Cursor--
	return true
}

// Next moves forward one question. It reports whether the cursor moved.
func (q *Quiz) Next() bool {
	if !q.CanNext() {
		return false
	}
	q.Cursor++
	return true
}

// Submit finishes the attempt and scores it. It reports false when the
// attempt is already finished or the cursor is not on the last question.
func (q *Quiz) Submit() bool {
	if !q.CanSubmit() {
		return false
	}
	q.syncAnswers()
	q.Score = Score(q.Questions, q.Answers)
	q.Finished = true
	q.Save = SavePending
	return true
}

// Score counts answers that equal the question's correct answer exactly.
// Unanswered questions count as incorrect.
func Score(questions []lesson.Question, answers []*string) int {
	n := 0
	for i, question := range questions {
		if i < len(answers) && answers[i] != nil && *answers[i] == question.Answer {
			n++
		}
	}
	return n
}
