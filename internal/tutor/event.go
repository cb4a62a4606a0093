package tutor

import "github.com/abhisek/datapath/internal/curriculum"

// Event is a user action or the result of an executed Effect.
type Event interface {
	event()
}

// User actions.
type (
	SplashElapsed struct{}
	ShowSignup    struct{}
	ShowLogin     struct{}

	SubmitLogin struct {
		Username string
		Password string
	}

	SubmitSignup struct {
		Username string
		Password string
		Confirm  string
	}

	Logout struct{}

	ChooseLevel struct {
		Level curriculum.Level
	}

	BackToLevels struct{}
	GuideMe      struct{}

	ChooseTopic struct {
		Topic string
	}

	BackToTopics struct{}
	RetryLesson  struct{}

	SendChat struct {
		Text string
	}

	StartPractice  struct{}
	BackToLesson   struct{}
	StartQuiz      struct{}
	BackToPractice struct{}

	SelectAnswer struct {
		Answer string
	}

	PrevQuestion   struct{}
	NextQuestion   struct{}
	SubmitQuiz     struct{}
	ContinueGuided struct{}
	LeaveQuiz      struct{}
)

// Results of executed effects.
type (
	// LoginSucceeded follows a successful Authenticate or CreateAccount.
	LoginSucceeded struct {
		Username   string
		NewAccount bool
	}

	// AuthFailed carries the auth or store error for the form page.
	AuthFailed struct {
		Err error
	}

	LessonReady struct {
		Topic  string
		Bundle string
	}

	LessonFailed struct {
		Topic string
		Err   error
	}

	// TutorReplied carries the text to append, which is a fallback
	// message when Err is set.
	TutorReplied struct {
		Topic string
		Text  string
		Err   error
	}

	ProgressSaved struct {
		Err error
	}
)

func (SplashElapsed) event()  {}
func (ShowSignup) event()     {}
func (ShowLogin) event()      {}
func (SubmitLogin) event()    {}
func (SubmitSignup) event()   {}
func (Logout) event()         {}
func (ChooseLevel) event()    {}
func (BackToLevels) event()   {}
func (GuideMe) event()        {}
func (ChooseTopic) event()    {}
func (BackToTopics) event()   {}
func (RetryLesson) event()    {}
func (SendChat) event()       {}
func (StartPractice) event()  {}
func (BackToLesson) event()   {}
func (StartQuiz) event()      {}
func (BackToPractice) event() {}
func (SelectAnswer) event()   {}
func (PrevQuestion) event()   {}
func (NextQuestion) event()   {}
func (SubmitQuiz) event()     {}
func (ContinueGuided) event() {}
func (LeaveQuiz) event()      {}

func (LoginSucceeded) event() {}
func (AuthFailed) event()     {}
func (LessonReady) event()    {}
func (LessonFailed) event()   {}
func (TutorReplied) event()   {}
func (ProgressSaved) event()  {}
