package tutor

import (
	"errors"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
)

// View is a read-only snapshot of a session for rendering. It derives the
// parsed lesson sections from the raw bundle on every call.
type View struct {
	Session  string           `json:"session"`
	Page     string           `json:"page"`
	LoggedIn bool             `json:"logged_in"`
	Username string           `json:"username,omitempty"`
	Busy     bool             `json:"busy,omitempty"`
	Level    curriculum.Level `json:"level,omitempty"`
	Topics   []string         `json:"topics,omitempty"`
	Notice   *Notice          `json:"notice,omitempty"`

	SelectedTopic  string `json:"selected_topic,omitempty"`
	GuidedMode     bool   `json:"guided_mode"`
	TopicIndex     int    `json:"topic_index"`
	GuidedComplete bool   `json:"guided_complete,omitempty"`

	Lesson *LessonView `json:"lesson,omitempty"`
	Quiz   *QuizView   `json:"quiz,omitempty"`
}

// LessonView is the lesson and practice content.
type LessonView struct {
	Topic      string `json:"topic"`
	Generating bool   `json:"generating,omitempty"`
	Error      string `json:"error,omitempty"`

	// Unavailable is set when the failure was a missing AI provider.
	Unavailable bool `json:"unavailable,omitempty"`

	Concept     string `json:"concept,omitempty"`
	DiagramText string `json:"diagram_text,omitempty"`
	DiagramURL  string `json:"diagram_url,omitempty"`
	Code        string `json:"code,omitempty"`
	Practice    string `json:"practice,omitempty"`

	// ParseError blocks the lesson page; PracticeError blocks practice.
	ParseError    *ParseErrorView `json:"parse_error,omitempty"`
	PracticeError *ParseErrorView `json:"practice_error,omitempty"`

	Chat          []lesson.Turn `json:"chat,omitempty"`
	AwaitingReply bool          `json:"awaiting_reply,omitempty"`
}

// ParseErrorView describes a lesson section that could not be parsed.
type ParseErrorView struct {
	Stage   lesson.Stage `json:"stage"`
	Message string       `json:"message"`
	Raw     string       `json:"raw"`
}

// QuizView is the quiz page.
type QuizView struct {
	LoadError *ParseErrorView `json:"load_error,omitempty"`

	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
	Selected *string  `json:"selected,omitempty"`

	CanPrev   bool `json:"can_prev"`
	CanNext   bool `json:"can_next"`
	CanSubmit bool `json:"can_submit"`

	Finished  bool       `json:"finished"`
	Score     int        `json:"score"`
	Save      SaveStatus `json:"save,omitempty"`
	SaveError string     `json:"save_error,omitempty"`
}

// View snapshots the session.
func (s *State) View() View {
	v := View{
		Session:        s.ID,
		Page:           s.Page.String(),
		LoggedIn:       s.LoggedIn,
		Username:       s.Username,
		Busy:           s.Busy,
		Level:          s.Level,
		SelectedTopic:  s.SelectedTopic,
		GuidedMode:     s.GuidedMode,
		TopicIndex:     s.TopicIndex,
		GuidedComplete: s.GuidedComplete(),
	}
	if s.Level != "" {
		v.Topics = s.Topics()
	}
	if s.Notice.Text != "" {
		n := s.Notice
		v.Notice = &n
	}

	switch s.Page {
	case PageLesson, PagePractice:
		if !v.GuidedComplete {
			v.Lesson = s.lessonView()
		}
	case PageQuiz:
		v.Quiz = s.quizView()
	case PageSplash, PageLogin, PageSignup, PageLevelSelect, PageTopicSelect:
	}
	return v
}

func (s *State) lessonView() *LessonView {
	lv := &LessonView{
		Topic:         s.SelectedTopic,
		Generating:    s.Generating != "",
		AwaitingReply: s.AwaitingReply,
	}
	if s.LessonErr != nil {
		lv.Error = s.LessonErr.Error()
		lv.Unavailable = errors.Is(s.LessonErr, lesson.ErrModelUnavailable)
	}
	if !s.HasLesson() {
		return lv
	}
	lv.Chat = s.Chat

	b, err := lesson.Split(s.LessonBundle)
	if err != nil {
		pe := parseErrorView(err, s.LessonBundle)
		lv.ParseError = pe
		lv.PracticeError = pe
		return lv
	}
	lv.Concept = b.Concept
	lv.Code = b.Code
	lv.Practice = b.Practice

	d, err := b.Diagram()
	if err != nil {
		lv.ParseError = parseErrorView(err, b.DiagramText)
		return lv
	}
	lv.DiagramText = d.Text
	lv.DiagramURL = d.URL
	return lv
}

func (s *State) quizView() *QuizView {
	q := &s.Quiz
	if q.LoadErr != nil {
		return &QuizView{LoadError: parseErrorView(q.LoadErr, "")}
	}

	qv := &QuizView{
		Index:     q.Cursor,
		Total:     len(q.Questions),
		CanPrev:   q.CanPrev(),
		CanNext:   q.CanNext(),
		CanSubmit: q.CanSubmit(),
		Finished:  q.Finished,
		Score:     q.Score,
		Save:      q.Save,
	}
	if q.SaveErr != nil {
		qv.SaveError = q.SaveErr.Error()
	}
	if cur, ok := q.Current(); ok {
		qv.Question = cur.Q
		qv.Options = cur.Options
	}
	if sel, ok := q.Selected(); ok {
		qv.Selected = &sel
	}
	return qv
}

func parseErrorView(err error, raw string) *ParseErrorView {
	pv := &ParseErrorView{Message: err.Error(), Raw: raw}
	var pe *lesson.ParseError
	if errors.As(err, &pe) {
		pv.Stage = pe.Stage
		pv.Raw = pe.Raw
	}
	return pv
}
