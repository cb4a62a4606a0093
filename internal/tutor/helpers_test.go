package tutor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/datapath/internal/curriculum"
)

// quizJSON builds n questions whose correct answer is always "A".
func quizJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"q":"Question %d","o":["A","B","C","D"],"a":"A"}`, i+1)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func bundleFor(topic string, questions int) string {
	return strings.Join([]string{
		"## Concept\nAll about " + topic,
		"## Diagram Description\nBoxes and arrows",
		"## Code Examples\nprint(1)",
		"## LeetCode Practice\n- 1. Two Sum https://leetcode.com/problems/two-sum/",
		"## Quiz Questions\n```json\n" + quizJSON(questions) + "\n```",
	}, "\n---\n")
}

func apply(t *testing.T, s *State, ev Event) []Effect {
	t.Helper()
	effects, err := Apply(s, ev)
	require.NoError(t, err, "apply %s", EventName(ev))
	return effects
}

// loggedIn returns a session for user sitting on the level page.
func loggedIn(t *testing.T, user string) *State {
	t.Helper()
	s := NewState()
	apply(t, s, SplashElapsed{})
	apply(t, s, SubmitLogin{Username: user, Password: "pw"})
	apply(t, s, LoginSucceeded{Username: user})
	require.Equal(t, PageLevelSelect, s.Page)
	return s
}

// onLesson returns a session with a loaded lesson for the first Beginner topic.
func onLesson(t *testing.T, questions int) *State {
	t.Helper()
	s := loggedIn(t, "alice")
	apply(t, s, ChooseLevel{Level: curriculum.Beginner})
	topic := curriculum.Topics(curriculum.Beginner)[0]
	apply(t, s, ChooseTopic{Topic: topic})
	apply(t, s, LessonReady{Topic: topic, Bundle: bundleFor(topic, questions)})
	require.True(t, s.HasLesson())
	return s
}

// onQuiz returns a session on the quiz page with a running attempt.
func onQuiz(t *testing.T, questions int) *State {
	t.Helper()
	s := onLesson(t, questions)
	apply(t, s, StartPractice{})
	apply(t, s, StartQuiz{})
	require.Equal(t, PageQuiz, s.Page)
	require.True(t, s.Quiz.Running())
	return s
}
