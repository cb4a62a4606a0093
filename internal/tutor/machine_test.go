package tutor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/datapath/internal/auth"
	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/store"
)

func TestSplashGoesToLogin(t *testing.T) {
	s := NewState()
	assert.Equal(t, PageSplash, s.Page)
	assert.NotEmpty(t, s.ID)

	effects := apply(t, s, SplashElapsed{})
	assert.Empty(t, effects)
	assert.Equal(t, PageLogin, s.Page)
}

func TestLogin(t *testing.T) {
	s := NewState()
	apply(t, s, SplashElapsed{})

	effects := apply(t, s, SubmitLogin{Username: "alice", Password: "pw"})
	require.Equal(t, []Effect{Authenticate{Username: "alice", Password: "pw"}}, effects)
	assert.True(t, s.Busy)

	_, err := Apply(s, SubmitLogin{Username: "alice", Password: "pw"})
	assert.Error(t, err, "second submit while busy")

	apply(t, s, AuthFailed{Err: auth.ErrInvalidCredentials})
	assert.Equal(t, PageLogin, s.Page)
	assert.False(t, s.Busy)
	assert.Equal(t, Notice{Kind: NoticeError, Text: "Invalid username or password."}, s.Notice)

	apply(t, s, SubmitLogin{Username: "alice", Password: "pw"})
	assert.Empty(t, s.Notice.Text, "user action clears the notice")
	apply(t, s, LoginSucceeded{Username: "alice"})
	assert.Equal(t, PageLevelSelect, s.Page)
	assert.True(t, s.LoggedIn)
	assert.Equal(t, "alice", s.Username)
}

func TestSignup(t *testing.T) {
	s := NewState()
	apply(t, s, SplashElapsed{})
	apply(t, s, ShowSignup{})
	require.Equal(t, PageSignup, s.Page)

	effects := apply(t, s, SubmitSignup{Username: "bob", Password: "a", Confirm: "b"})
	require.Equal(t, []Effect{CreateAccount{Username: "bob", Password: "a", Confirm: "b"}}, effects)

	apply(t, s, AuthFailed{Err: auth.ErrPasswordMismatch})
	assert.Equal(t, PageSignup, s.Page)
	assert.Equal(t, "Passwords do not match.", s.Notice.Text)

	apply(t, s, SubmitSignup{Username: "bob", Password: "a", Confirm: "a"})
	apply(t, s, LoginSucceeded{Username: "bob", NewAccount: true})
	assert.Equal(t, PageLevelSelect, s.Page)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Text: SignupSuccessText}, s.Notice)
}

func TestShowLogin(t *testing.T) {
	s := NewState()
	apply(t, s, SplashElapsed{})
	apply(t, s, ShowSignup{})
	apply(t, s, ShowLogin{})
	assert.Equal(t, PageLogin, s.Page)
}

func TestAuthMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{auth.ErrEmptyFields, "Please fill out all fields."},
		{auth.ErrMissingCredentials, "Please enter both username and password."},
		{auth.ErrPasswordMismatch, "Passwords do not match."},
		{store.ErrDuplicateUsername, "Username already exists. Please choose a different one."},
		{auth.ErrInvalidCredentials, "Invalid username or password."},
		{errors.New("disk full"), "Something went wrong: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthMessage(tt.err))
		})
	}
}

func TestResolvePage(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Page
	}{
		{"login is public", State{Page: PageLogin}, PageLogin},
		{"signup is public", State{Page: PageSignup}, PageSignup},
		{"levels need login", State{Page: PageLevelSelect}, PageLogin},
		{"topics need login", State{Page: PageTopicSelect}, PageLogin},
		{"topics need a level", State{Page: PageTopicSelect, LoggedIn: true}, PageLevelSelect},
		{"lesson needs login", State{Page: PageLesson, SelectedTopic: "Strings"}, PageLogin},
		{"lesson needs a topic", State{Page: PageLesson, LoggedIn: true, Level: curriculum.Beginner}, PageTopicSelect},
		{"practice needs a topic", State{Page: PagePractice, LoggedIn: true, Level: curriculum.Beginner}, PageTopicSelect},
		{"quiz needs a topic", State{Page: PageQuiz, LoggedIn: true, Level: curriculum.Beginner}, PageTopicSelect},
		{"guided mode needs no topic", State{Page: PageLesson, LoggedIn: true, Level: curriculum.Beginner, GuidedMode: true}, PageLesson},
		{"quiz with topic", State{Page: PageQuiz, LoggedIn: true, Level: curriculum.Beginner, SelectedTopic: "Strings"}, PageQuiz},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePage(&tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePage_UnknownPage(t *testing.T) {
	_, err := resolvePage(&State{Page: Page(42), LoggedIn: true})
	assert.Error(t, err)
}

func TestPageKeys(t *testing.T) {
	want := []string{
		"splash", "login", "signup", "skill_level_selection",
		"topic_selection", "chat_tutor", "leetcode_practice", "mcq_test",
	}
	for i, p := range AllPages() {
		assert.Equal(t, want[i], p.String())
		parsed, err := ParsePage(want[i])
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParsePage("home")
	assert.Error(t, err)
}

func TestRejectedEvents(t *testing.T) {
	s := loggedIn(t, "alice")
	s.Notice = Notice{Kind: NoticeInfo, Text: "keep me"}

	for _, ev := range []Event{SplashElapsed{}, ShowSignup{}, GuideMe{}, StartQuiz{}, SubmitQuiz{}, LeaveQuiz{}} {
		_, err := Apply(s, ev)
		var ie *InvalidEventError
		require.ErrorAs(t, err, &ie, EventName(ev))
		assert.Equal(t, PageLevelSelect, ie.Page)
	}
	assert.Equal(t, PageLevelSelect, s.Page)
	assert.Equal(t, "keep me", s.Notice.Text, "rejected events leave state unchanged")
}

func TestChooseLevelAndTopic(t *testing.T) {
	s := loggedIn(t, "alice")

	_, err := Apply(s, ChooseLevel{Level: "Expert"})
	require.ErrorIs(t, err, curriculum.ErrUnknownLevel)

	apply(t, s, ChooseLevel{Level: curriculum.Intermediate})
	assert.Equal(t, PageTopicSelect, s.Page)
	assert.Len(t, s.Topics(), 9)

	apply(t, s, BackToLevels{})
	assert.Equal(t, PageLevelSelect, s.Page)
	apply(t, s, ChooseLevel{Level: curriculum.Intermediate})

	_, err = Apply(s, ChooseTopic{Topic: "Cooking"})
	require.ErrorIs(t, err, ErrUnknownTopic)

	effects := apply(t, s, ChooseTopic{Topic: "Heaps (Min/Max Heap)"})
	assert.Equal(t, PageLesson, s.Page)
	assert.Equal(t, []Effect{GenerateLesson{Level: curriculum.Intermediate, Topic: "Heaps (Min/Max Heap)"}}, effects)
	assert.Equal(t, "Heaps (Min/Max Heap)", s.Generating)
	assert.False(t, s.GuidedMode)
}

func TestLessonReady(t *testing.T) {
	s := onLesson(t, 5)
	topic := s.SelectedTopic

	assert.Empty(t, s.Generating)
	assert.Equal(t, topic, s.LessonTopic)
	require.Len(t, s.Chat, 1)
	assert.Equal(t, lesson.Turn{Role: lesson.RoleAssistant, Content: lesson.Greeting(topic)}, s.Chat[0])

	// Revisiting the lesson reuses the bundle.
	apply(t, s, StartPractice{})
	effects := apply(t, s, BackToLesson{})
	assert.Empty(t, effects)
	assert.Equal(t, PageLesson, s.Page)
}

func TestLessonResultForOtherTopicIgnored(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	apply(t, s, ChooseTopic{Topic: "Strings"})
	apply(t, s, BackToTopics{})
	apply(t, s, ChooseTopic{Topic: "Queues (FIFO)"})

	apply(t, s, LessonReady{Topic: "Strings", Bundle: bundleFor("Strings", 5)})
	assert.False(t, s.HasLesson())
	assert.Equal(t, "Queues (FIFO)", s.Generating)

	apply(t, s, LessonFailed{Topic: "Strings", Err: errors.New("late")})
	assert.NoError(t, s.LessonErr)
}

func TestLessonFailedThenRetry(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	apply(t, s, ChooseTopic{Topic: "Strings"})

	genErr := &lesson.GenerationError{Topic: "Strings", Err: lesson.ErrModelUnavailable}
	effects := apply(t, s, LessonFailed{Topic: "Strings", Err: genErr})
	assert.Empty(t, effects, "a failure does not retry by itself")
	assert.Equal(t, PageLesson, s.Page)
	assert.ErrorIs(t, s.LessonErr, lesson.ErrModelUnavailable)

	v := s.View()
	require.NotNil(t, v.Lesson)
	assert.True(t, v.Lesson.Unavailable)
	assert.NotEmpty(t, v.Lesson.Error)

	effects = apply(t, s, RetryLesson{})
	assert.Equal(t, []Effect{GenerateLesson{Level: curriculum.Beginner, Topic: "Strings"}}, effects)
	assert.NoError(t, s.LessonErr)

	_, err := Apply(s, RetryLesson{})
	assert.Error(t, err, "nothing to retry while generating")
}

func TestBackToTopicsDropsLesson(t *testing.T) {
	s := onLesson(t, 5)
	apply(t, s, BackToTopics{})

	assert.Equal(t, PageTopicSelect, s.Page)
	assert.Empty(t, s.LessonBundle)
	assert.Empty(t, s.LessonTopic)
	assert.Empty(t, s.Chat)
}

func TestChat(t *testing.T) {
	s := onLesson(t, 5)
	topic := s.SelectedTopic

	assert.Empty(t, apply(t, s, SendChat{Text: "   "}), "blank messages are ignored")
	assert.Len(t, s.Chat, 1)

	effects := apply(t, s, SendChat{Text: " what is it? "})
	require.Len(t, effects, 1)
	ask, ok := effects[0].(AskTutor)
	require.True(t, ok)
	assert.Equal(t, topic, ask.Topic)
	assert.Equal(t, s.LessonBundle, ask.Lesson)
	require.Len(t, ask.Transcript, 2)
	assert.Equal(t, lesson.Turn{Role: lesson.RoleUser, Content: "what is it?"}, ask.Transcript[1])
	assert.True(t, s.AwaitingReply)

	_, err := Apply(s, SendChat{Text: "again"})
	assert.Error(t, err, "one question at a time")

	apply(t, s, TutorReplied{Topic: topic, Text: "It is a thing."})
	assert.False(t, s.AwaitingReply)
	require.Len(t, s.Chat, 3)
	assert.Equal(t, lesson.Turn{Role: lesson.RoleAssistant, Content: "It is a thing."}, s.Chat[2])

	// Late replies are dropped.
	apply(t, s, TutorReplied{Topic: topic, Text: "dup"})
	assert.Len(t, s.Chat, 3)
}

func TestChatFallbackReplyAppended(t *testing.T) {
	s := onLesson(t, 5)
	apply(t, s, SendChat{Text: "hi"})
	apply(t, s, TutorReplied{Topic: s.LessonTopic, Text: lesson.OfflineReply, Err: lesson.ErrModelUnavailable})
	assert.Equal(t, lesson.OfflineReply, s.Chat[len(s.Chat)-1].Content)
}

func TestQuizFlow(t *testing.T) {
	s := onQuiz(t, 3)

	_, err := Apply(s, PrevQuestion{})
	assert.Error(t, err, "no previous at the first question")
	_, err = Apply(s, SubmitQuiz{})
	assert.Error(t, err, "submit only at the last question")
	_, err = Apply(s, SelectAnswer{Answer: "Z"})
	assert.Error(t, err, "answer must be an option")

	apply(t, s, SelectAnswer{Answer: "A"})
	apply(t, s, NextQuestion{})
	apply(t, s, SelectAnswer{Answer: "B"})
	apply(t, s, NextQuestion{})
	_, err = Apply(s, NextQuestion{})
	assert.Error(t, err, "no next at the last question")

	apply(t, s, PrevQuestion{})
	sel, ok := s.Quiz.Selected()
	require.True(t, ok)
	assert.Equal(t, "B", sel)
	apply(t, s, SelectAnswer{Answer: "A"})
	apply(t, s, NextQuestion{})

	effects := apply(t, s, SubmitQuiz{})
	assert.Equal(t, []Effect{RecordProgress{Username: "alice", Topic: s.SelectedTopic, Score: 2}}, effects)
	assert.True(t, s.Quiz.Finished)
	assert.Equal(t, 2, s.Quiz.Score)
	assert.Equal(t, SavePending, s.Quiz.Save)

	_, err = Apply(s, SubmitQuiz{})
	assert.Error(t, err, "submit fires once")

	apply(t, s, ProgressSaved{})
	assert.Equal(t, SaveOK, s.Quiz.Save)

	_, err = Apply(s, ContinueGuided{})
	assert.Error(t, err, "not in guided mode")
	apply(t, s, LeaveQuiz{})
	assert.Equal(t, PageTopicSelect, s.Page)
}

func TestQuizSaveFailureIsWarning(t *testing.T) {
	s := onQuiz(t, 1)
	apply(t, s, SubmitQuiz{})
	storeErr := &store.StorageError{Op: "record progress", Err: errors.New("disk I/O error")}
	apply(t, s, ProgressSaved{Err: storeErr})

	assert.Equal(t, SaveFailed, s.Quiz.Save)
	assert.True(t, s.Quiz.Finished)
	v := s.View()
	require.NotNil(t, v.Quiz)
	assert.True(t, v.Quiz.Finished)
	assert.Contains(t, v.Quiz.SaveError, "disk I/O error")
}

func TestQuizRestartsOnStartQuiz(t *testing.T) {
	s := onQuiz(t, 2)
	apply(t, s, SelectAnswer{Answer: "C"})
	apply(t, s, BackToPractice{})
	apply(t, s, StartQuiz{})

	_, ok := s.Quiz.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Quiz.Cursor)
}

func TestQuizLoadError(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	apply(t, s, ChooseTopic{Topic: "Strings"})
	broken := "## Concept\nx\n---\n## Diagram Description\ny\n---\nc\n---\np\n---\nno fence here"
	apply(t, s, LessonReady{Topic: "Strings", Bundle: broken})

	apply(t, s, StartPractice{})
	apply(t, s, StartQuiz{})
	assert.Equal(t, PageQuiz, s.Page)

	var pe *lesson.ParseError
	require.ErrorAs(t, s.Quiz.LoadErr, &pe)
	assert.Equal(t, lesson.StageQuiz, pe.Stage)

	v := s.View()
	require.NotNil(t, v.Quiz.LoadError)
	assert.Equal(t, lesson.StageQuiz, v.Quiz.LoadError.Stage)
	assert.Equal(t, "no fence here", v.Quiz.LoadError.Raw)

	apply(t, s, BackToTopics{})
	assert.Equal(t, PageTopicSelect, s.Page)
}

func TestLessonSectionsErrorBlocksOnlyLesson(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	apply(t, s, ChooseTopic{Topic: "Strings"})
	apply(t, s, LessonReady{Topic: "Strings", Bundle: "only\n---\nthree\n---\nparts"})

	v := s.View()
	require.NotNil(t, v.Lesson.ParseError)
	assert.Equal(t, lesson.StageSections, v.Lesson.ParseError.Stage)
	assert.Equal(t, "only\n---\nthree\n---\nparts", v.Lesson.ParseError.Raw)
}

func TestGuidedPath(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	topics := curriculum.Topics(curriculum.Beginner)

	effects := apply(t, s, GuideMe{})
	assert.Equal(t, []Effect{GenerateLesson{Level: curriculum.Beginner, Topic: topics[0]}}, effects)
	assert.Equal(t, topics[0], s.SelectedTopic)

	apply(t, s, LessonReady{Topic: topics[0], Bundle: bundleFor(topics[0], 1)})
	apply(t, s, StartPractice{})
	apply(t, s, StartQuiz{})
	apply(t, s, SubmitQuiz{})
	assert.Equal(t, 1, s.TopicIndex)

	_, err := Apply(s, LeaveQuiz{})
	require.NoError(t, err, "leaving is always possible after finishing")
	assert.Equal(t, PageTopicSelect, s.Page)
}

func TestGuidedContinue(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	topics := curriculum.Topics(curriculum.Beginner)
	apply(t, s, GuideMe{})
	apply(t, s, LessonReady{Topic: topics[0], Bundle: bundleFor(topics[0], 1)})
	apply(t, s, StartPractice{})
	apply(t, s, StartQuiz{})
	apply(t, s, SubmitQuiz{})

	effects := apply(t, s, ContinueGuided{})
	assert.Equal(t, PageLesson, s.Page)
	assert.Equal(t, topics[1], s.SelectedTopic)
	assert.Equal(t, []Effect{GenerateLesson{Level: curriculum.Beginner, Topic: topics[1]}}, effects)
	assert.False(t, s.HasLesson())
}

func TestGuidedCompletion(t *testing.T) {
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Pro})
	topics := curriculum.Topics(curriculum.Pro)

	apply(t, s, GuideMe{})
	for i, topic := range topics {
		require.Equal(t, topic, s.SelectedTopic)
		apply(t, s, LessonReady{Topic: topic, Bundle: bundleFor(topic, 1)})
		apply(t, s, StartPractice{})
		apply(t, s, StartQuiz{})
		apply(t, s, SubmitQuiz{})
		require.Equal(t, i+1, s.TopicIndex)

		effects := apply(t, s, ContinueGuided{})
		if i < len(topics)-1 {
			require.Equal(t, []Effect{GenerateLesson{Level: curriculum.Pro, Topic: topics[i+1]}}, effects)
		} else {
			assert.Empty(t, effects, "no lesson past the end of the path")
		}
	}

	assert.Equal(t, PageLesson, s.Page)
	assert.True(t, s.GuidedComplete())
	v := s.View()
	assert.True(t, v.GuidedComplete)
	assert.Nil(t, v.Lesson)

	for _, ev := range []Event{
		SendChat{Text: "one more question"},
		RetryLesson{},
		StartPractice{},
		StartQuiz{},
		SelectAnswer{Answer: "A"},
		NextQuestion{},
		SubmitQuiz{},
	} {
		_, err := Apply(s, ev)
		var ie *InvalidEventError
		require.ErrorAs(t, err, &ie, "%s after the guided path", EventName(ev))
	}
	assert.Equal(t, PageLesson, s.Page)
	assert.Equal(t, len(topics), s.TopicIndex)
	assert.Len(t, s.Chat, 1, "only the greeting")

	apply(t, s, BackToTopics{})
	assert.False(t, s.GuidedMode)
	assert.Equal(t, PageTopicSelect, s.Page)
}

func TestLogoutKeepsStateForSameUser(t *testing.T) {
	s := onLesson(t, 5)
	topic := s.SelectedTopic

	apply(t, s, Logout{})
	assert.Equal(t, PageLogin, s.Page)
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Username)

	_, err := Apply(s, Logout{})
	assert.Error(t, err)

	apply(t, s, SubmitLogin{Username: "alice", Password: "pw"})
	apply(t, s, LoginSucceeded{Username: "alice"})
	assert.Equal(t, PageLevelSelect, s.Page)
	assert.Equal(t, topic, s.SelectedTopic)
	assert.True(t, s.HasLesson())
}

func TestLogoutResetsStateForOtherUser(t *testing.T) {
	s := onLesson(t, 5)

	apply(t, s, Logout{})
	apply(t, s, SubmitLogin{Username: "bob", Password: "pw"})
	apply(t, s, LoginSucceeded{Username: "bob"})

	assert.Equal(t, "bob", s.Username)
	assert.Empty(t, s.Level)
	assert.Empty(t, s.SelectedTopic)
	assert.Empty(t, s.LessonBundle)
	assert.Empty(t, s.Chat)
}

func TestLogoutFromProtectedPage(t *testing.T) {
	s := onQuiz(t, 2)
	apply(t, s, Logout{})
	assert.Equal(t, PageLogin, s.Page)

	_, err := Apply(s, SelectAnswer{Answer: "A"})
	assert.Error(t, err)
}
