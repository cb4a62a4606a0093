package tutor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/datapath/internal/curriculum"
)

// ErrUnknownEvent is returned by DecodeEvent for an unrecognised type.
var ErrUnknownEvent = errors.New("unknown event type")

// wireEvent is the JSON form of a user action: {"type": "...", ...fields}.
type wireEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Level    string `json:"level"`
	Topic    string `json:"topic"`
	Text     string `json:"text"`
	Answer   string `json:"answer"`
}

// DecodeEvent parses a user action sent by an API client. Result events
// cannot be sent from outside.
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	switch w.Type {
	case "splash_elapsed":
		return SplashElapsed{}, nil
	case "show_signup":
		return ShowSignup{}, nil
	case "show_login":
		return ShowLogin{}, nil
	case "submit_login":
		return SubmitLogin{Username: w.Username, Password: w.Password}, nil
	case "submit_signup":
		return SubmitSignup{Username: w.Username, Password: w.Password, Confirm: w.Confirm}, nil
	case "logout":
		return Logout{}, nil
	case "choose_level":
		level, err := curriculum.ParseLevel(w.Level)
		if err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		return ChooseLevel{Level: level}, nil
	case "back_to_levels":
		return BackToLevels{}, nil
	case "guide_me":
		return GuideMe{}, nil
	case "choose_topic":
		return ChooseTopic{Topic: w.Topic}, nil
	case "back_to_topics":
		return BackToTopics{}, nil
	case "retry_lesson":
		return RetryLesson{}, nil
	case "send_chat":
		return SendChat{Text: w.Text}, nil
	case "start_practice":
		return StartPractice{}, nil
	case "back_to_lesson":
		return BackToLesson{}, nil
	case "start_quiz":
		return StartQuiz{}, nil
	case "back_to_practice":
		return BackToPractice{}, nil
	case "select_answer":
		return SelectAnswer{Answer: w.Answer}, nil
	case "prev_question":
		return PrevQuestion{}, nil
	case "next_question":
		return NextQuestion{}, nil
	case "submit_quiz":
		return SubmitQuiz{}, nil
	case "continue_guided":
		return ContinueGuided{}, nil
	case "leave_quiz":
		return LeaveQuiz{}, nil
	default:
		return nil, fmt.Errorf("decode event: %w %q", ErrUnknownEvent, w.Type)
	}
}

// EventName returns the snake_case name of an event for logs and errors.
func EventName(ev Event) string {
	switch ev.(type) {
	case SplashElapsed:
		return "splash_elapsed"
	case ShowSignup:
		return "show_signup"
	case ShowLogin:
		return "show_login"
	case SubmitLogin:
		return "submit_login"
	case SubmitSignup:
		return "submit_signup"
	case Logout:
		return "logout"
	case ChooseLevel:
		return "choose_level"
	case BackToLevels:
		return "back_to_levels"
	case GuideMe:
		return "guide_me"
	case ChooseTopic:
		return "choose_topic"
	case BackToTopics:
		return "back_to_topics"
	case RetryLesson:
		return "retry_lesson"
	case SendChat:
		return "send_chat"
	case StartPractice:
		return "start_practice"
	case BackToLesson:
		return "back_to_lesson"
	case StartQuiz:
		return "start_quiz"
	case BackToPractice:
		return "back_to_practice"
	case SelectAnswer:
		return "select_answer"
	case PrevQuestion:
		return "prev_question"
	case NextQuestion:
		return "next_question"
	case SubmitQuiz:
		return "submit_quiz"
	case ContinueGuided:
		return "continue_guided"
	case LeaveQuiz:
		return "leave_quiz"
	case LoginSucceeded:
		return "login_succeeded"
	case AuthFailed:
		return "auth_failed"
	case LessonReady:
		return "lesson_ready"
	case LessonFailed:
		return "lesson_failed"
	case TutorReplied:
		return "tutor_replied"
	case ProgressSaved:
		return "progress_saved"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
