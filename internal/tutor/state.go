package tutor

import (
	"github.com/google/uuid"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
)

// NoticeKind classifies a message shown above the page content.
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a transient message. It is cleared by the next user action.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// State is everything one interactive session knows. It is owned by a
// single goroutine at a time and only changed through Apply.
type State struct {
	ID   string
	Page Page

	LoggedIn bool
	Username string

	// Busy is set while an Authenticate or CreateAccount effect runs.
	Busy bool

	Level         curriculum.Level
	SelectedTopic string
	GuidedMode    bool
	TopicIndex    int

	// LessonBundle is the raw generated text for LessonTopic. It is only
	// valid while LessonTopic == SelectedTopic.
	LessonBundle string
	LessonTopic  string

	// Generating is the topic of the outstanding GenerateLesson, if any.
	Generating string

	// LessonErr is the last generation failure for SelectedTopic.
	LessonErr error

	Chat []lesson.Turn

	// AwaitingReply is set between SendChat and TutorReplied.
	AwaitingReply bool

	Quiz Quiz

	Notice Notice

	// owner is the last account that logged in. Learning state survives a
	// logout and login of the same account.
	owner string
}

// NewState creates a session on the splash page.
func NewState() *State {
	return &State{ID: uuid.NewString(), Page: PageSplash}
}

// Topics returns the topic list for the chosen level.
func (s *State) Topics() []string {
	return curriculum.Topics(s.Level)
}

// GuidedComplete reports whether guided mode has run past the last topic.
func (s *State) GuidedComplete() bool {
	return s.GuidedMode && s.TopicIndex >= len(curriculum.Topics(s.Level))
}

// HasLesson reports whether a bundle for the selected topic is loaded.
func (s *State) HasLesson() bool {
	return s.LessonBundle != "" && s.LessonTopic == s.SelectedTopic
}

// resetLearning drops everything tied to the previous account.
func (s *State) resetLearning() {
	s.Level = ""
	s.SelectedTopic = ""
	s.GuidedMode = false
	s.TopicIndex = 0
	s.clearLesson()
}

// clearLesson drops the bundle and everything derived from it.
func (s *State) clearLesson() {
	s.LessonBundle = ""
	s.LessonTopic = ""
	s.Generating = ""
	s.LessonErr = nil
	s.Chat = nil
	s.AwaitingReply = false
	s.Quiz = Quiz{}
}
