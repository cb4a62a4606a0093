package tutor

import (
	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
)

// Effect is work requested by Apply. Effects are plain data; the surface
// runs them through an Executor and feeds the resulting Event back.
type Effect interface {
	effect()
}

type (
	Authenticate struct {
		Username string
		Password string
	}

	CreateAccount struct {
		Username string
		Password string
		Confirm  string
	}

	GenerateLesson struct {
		Level curriculum.Level
		Topic string
	}

	AskTutor struct {
		Topic      string
		Lesson     string
		Transcript []lesson.Turn
	}

	RecordProgress struct {
		Username string
		Topic    string
		Score    int
	}
)

func (Authenticate) effect()   {}
func (CreateAccount) effect()  {}
func (GenerateLesson) effect() {}
func (AskTutor) effect()       {}
func (RecordProgress) effect() {}
