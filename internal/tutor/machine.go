// Package tutor holds the per-session state machine that drives the
// DataPath flow: login, level and topic selection, lesson, practice and
// quiz. Apply is pure; it mutates State and returns effects as data.
package tutor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/datapath/internal/auth"
	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/store"
)

// Notice texts shared with the surfaces.
const (
	SignupSuccessText = "Account created successfully! Logging in..."
	ProgressSavedText = "Your progress has been saved!"
)

// ErrUnknownTopic is returned for a topic outside the chosen level.
var ErrUnknownTopic = errors.New("unknown topic")

// InvalidEventError is returned when an event does not apply to the
// session's current page.
type InvalidEventError struct {
	Event Event
	Page  Page
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("%s is not allowed on %s", EventName(e.Event), e.Page)
}

// Apply feeds one event into the session. It returns the effects the
// caller must execute, or an error when the event is rejected. A rejected
// event leaves the state unchanged.
func Apply(s *State, ev Event) ([]Effect, error) {
	notice := s.Notice
	if isUserEvent(ev) {
		s.Notice = Notice{}
	}

	effects, err := transition(s, ev)
	if err != nil {
		s.Notice = notice
		return nil, err
	}

	page, err := resolvePage(s)
	if err != nil {
		return nil, err
	}
	s.Page = page

	if s.Page == PageLesson {
		if eff := ensureLesson(s); eff != nil {
			effects = append(effects, eff)
		}
	}
	return effects, nil
}

func transition(s *State, ev Event) ([]Effect, error) {
	reject := func() ([]Effect, error) {
		return nil, &InvalidEventError{Event: ev, Page: s.Page}
	}
	// Past the end of the guided path only BackToTopics and Logout apply,
	// plus leaving the quiz that finished the path.
	done := s.GuidedComplete()

	switch ev := ev.(type) {
	case SplashElapsed:
		if s.Page != PageSplash {
			return reject()
		}
		s.Page = PageLogin

	case ShowSignup:
		if s.Page != PageLogin || s.Busy {
			return reject()
		}
		s.Page = PageSignup

	case ShowLogin:
		if s.Page != PageSignup || s.Busy {
			return reject()
		}
		s.Page = PageLogin

	case SubmitLogin:
		if s.Page != PageLogin || s.Busy {
			return reject()
		}
		s.Busy = true
		return []Effect{Authenticate{Username: ev.Username, Password: ev.Password}}, nil

	case SubmitSignup:
		if s.Page != PageSignup || s.Busy {
			return reject()
		}
		s.Busy = true
		return []Effect{CreateAccount{Username: ev.Username, Password: ev.Password, Confirm: ev.Confirm}}, nil

	case Logout:
		if !s.LoggedIn {
			return reject()
		}
		s.LoggedIn = false
		s.Username = ""
		s.Page = PageLogin

	case ChooseLevel:
		if s.Page != PageLevelSelect {
			return reject()
		}
		if !ev.Level.Valid() {
			return nil, fmt.Errorf("choose level: %w", curriculum.ErrUnknownLevel)
		}
		if ev.Level != s.Level {
			s.SelectedTopic = ""
			s.GuidedMode = false
			s.TopicIndex = 0
			s.clearLesson()
		}
		s.Level = ev.Level
		s.Page = PageTopicSelect

	case BackToLevels:
		if s.Page != PageTopicSelect {
			return reject()
		}
		s.Page = PageLevelSelect

	case GuideMe:
		if s.Page != PageTopicSelect {
			return reject()
		}
		s.GuidedMode = true
		s.TopicIndex = 0
		s.LessonErr = nil
		s.Page = PageLesson

	case ChooseTopic:
		if s.Page != PageTopicSelect {
			return reject()
		}
		if !curriculum.HasTopic(s.Level, ev.Topic) {
			return nil, fmt.Errorf("choose topic %q: %w", ev.Topic, ErrUnknownTopic)
		}
		s.GuidedMode = false
		s.SelectedTopic = ev.Topic
		s.LessonErr = nil
		s.Page = PageLesson

	case BackToTopics:
		if s.Page != PageLesson && !(s.Page == PageQuiz && s.Quiz.LoadErr != nil) {
			return reject()
		}
		s.clearLesson()
		s.GuidedMode = false
		s.Page = PageTopicSelect

	case RetryLesson:
		if s.Page != PageLesson || done || s.LessonErr == nil {
			return reject()
		}
		s.LessonErr = nil

	case SendChat:
		if s.Page != PageLesson || done || !s.HasLesson() || s.AwaitingReply {
			return reject()
		}
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return nil, nil
		}
		s.Chat = append(s.Chat, lesson.Turn{Role: lesson.RoleUser, Content: text})
		s.AwaitingReply = true
		transcript := make([]lesson.Turn, len(s.Chat))
		copy(transcript, s.Chat)
		return []Effect{AskTutor{Topic: s.LessonTopic, Lesson: s.LessonBundle, Transcript: transcript}}, nil

	case StartPractice:
		if s.Page != PageLesson || done || !s.HasLesson() {
			return reject()
		}
		s.Page = PagePractice

	case BackToLesson:
		if s.Page != PagePractice || done {
			return reject()
		}
		s.Page = PageLesson

	case StartQuiz:
		if s.Page != PagePractice || done || !s.HasLesson() {
			return reject()
		}
		startQuiz(s)
		s.Page = PageQuiz

	case BackToPractice:
		if s.Page != PageQuiz || done || s.Quiz.Finished {
			return reject()
		}
		s.Page = PagePractice

	case SelectAnswer:
		if s.Page != PageQuiz || done {
			return reject()
		}
		if err := s.Quiz.Select(ev.Answer); err != nil {
			return nil, fmt.Errorf("select answer: %w", err)
		}

	case PrevQuestion:
		if s.Page != PageQuiz || done || !s.Quiz.Prev() {
			return reject()
		}

	case NextQuestion:
		if s.Page != PageQuiz || done || !s.Quiz.Next() {
			return reject()
		}

	case SubmitQuiz:
		if s.Page != PageQuiz || done || !s.Quiz.Submit() {
			return reject()
		}
		if s.GuidedMode {
			s.TopicIndex++
		}
		return []Effect{RecordProgress{Username: s.Username, Topic: s.SelectedTopic, Score: s.Quiz.Score}}, nil

	case ContinueGuided:
		if s.Page != PageQuiz || !s.Quiz.Finished || !s.GuidedMode {
			return reject()
		}
		s.Page = PageLesson

	case LeaveQuiz:
		if s.Page != PageQuiz || !s.Quiz.Finished {
			return reject()
		}
		s.Page = PageTopicSelect

	case LoginSucceeded:
		s.Busy = false
		if s.owner != "" && s.owner != ev.Username {
			s.resetLearning()
		}
		s.owner = ev.Username
		s.LoggedIn = true
		s.Username = ev.Username
		s.Page = PageLevelSelect
		if ev.NewAccount {
			s.Notice = Notice{Kind: NoticeSuccess, Text: SignupSuccessText}
		}

	case AuthFailed:
		s.Busy = false
		s.Notice = Notice{Kind: NoticeError, Text: AuthMessage(ev.Err)}

	case LessonReady:
		if ev.Topic != s.Generating {
			return nil, nil
		}
		s.Generating = ""
		s.LessonErr = nil
		s.LessonBundle = ev.Bundle
		s.LessonTopic = ev.Topic
		s.Chat = []lesson.Turn{{Role: lesson.RoleAssistant, Content: lesson.Greeting(ev.Topic)}}
		s.AwaitingReply = false
		s.Quiz = Quiz{}

	case LessonFailed:
		if ev.Topic != s.Generating {
			return nil, nil
		}
		s.Generating = ""
		s.LessonErr = ev.Err

	case TutorReplied:
		if !s.AwaitingReply || ev.Topic != s.LessonTopic {
			return nil, nil
		}
		s.AwaitingReply = false
		s.Chat = append(s.Chat, lesson.Turn{Role: lesson.RoleAssistant, Content: ev.Text})

	case ProgressSaved:
		if !s.Quiz.Finished || s.Quiz.Save != SavePending {
			return nil, nil
		}
		if ev.Err != nil {
			s.Quiz.Save = SaveFailed
			s.Quiz.SaveErr = ev.Err
		} else {
			s.Quiz.Save = SaveOK
		}

	default:
		return nil, fmt.Errorf("unhandled event %T", ev)
	}
	return nil, nil
}

// ensureLesson runs on every visit to the lesson page. It picks the
// guided topic and requests a bundle when none is loaded for the topic.
func ensureLesson(s *State) Effect {
	if s.GuidedMode {
		topic, ok := curriculum.TopicAt(s.Level, s.TopicIndex)
		if !ok {
			return nil
		}
		s.SelectedTopic = topic
	}

	if s.HasLesson() || s.LessonErr != nil {
		return nil
	}
	if s.Generating == s.SelectedTopic {
		return nil
	}
	if s.LessonTopic != s.SelectedTopic {
		s.clearLesson()
	}
	s.Generating = s.SelectedTopic
	return GenerateLesson{Level: s.Level, Topic: s.SelectedTopic}
}

// startQuiz loads the questions from the bundle's quiz section.
func startQuiz(s *State) {
	b, err := lesson.Split(s.LessonBundle)
	if err != nil {
		s.Quiz.Fail(err)
		return
	}
	questions, err := b.Quiz()
	if err != nil {
		s.Quiz.Fail(err)
		return
	}
	s.Quiz.Start(questions)
}

// AuthMessage renders an auth or account error for the form page.
func AuthMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyFields):
		return "Please fill out all fields."
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Please enter both username and password."
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, store.ErrDuplicateUsername):
		return "Username already exists. Please choose a different one."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

func isUserEvent(ev Event) bool {
	switch ev.(type) {
	case LoginSucceeded, AuthFailed, LessonReady, LessonFailed, TutorReplied, ProgressSaved:
		return false
	default:
		return true
	}
}
