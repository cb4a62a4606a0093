package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/datapath/internal/curriculum"
	"github.com/abhisek/datapath/internal/lesson"
	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/store"
)

// Authenticator checks and creates accounts.
type Authenticator interface {
	SignUp(ctx context.Context, username, password, confirm string) error
	Authenticate(ctx context.Context, username, password string) error
}

// LessonGenerator produces raw lesson bundles.
type LessonGenerator interface {
	Generate(ctx context.Context, level curriculum.Level, topic string) (string, error)
}

// ChatTutor answers follow-up questions about a lesson.
type ChatTutor interface {
	Reply(ctx context.Context, topic, bundle string, transcript []lesson.Turn) (string, error)
}

// Executor runs effects against the store and the AI provider and turns
// each outcome into a result event.
type Executor struct {
	auth     Authenticator
	progress store.ProgressRepo
	lessons  LessonGenerator
	tutor    ChatTutor
	logger   *logrus.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logrus.Logger) ExecutorOption {
	return func(x *Executor) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// NewExecutor creates an Executor.
func NewExecutor(auth Authenticator, progress store.ProgressRepo, lessons LessonGenerator, tutor ChatTutor, opts ...ExecutorOption) *Executor {
	x := &Executor{
		auth:     auth,
		progress: progress,
		lessons:  lessons,
		tutor:    tutor,
		logger:   logging.Discard(),
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Execute runs one effect for the given session and returns the event to
// feed back into Apply. It never returns nil.
func (x *Executor) Execute(ctx context.Context, sessionID string, eff Effect) Event {
	log := x.logger.WithField("session", sessionID)

	switch eff := eff.(type) {
	case Authenticate:
		log = log.WithField("user", eff.Username)
		if err := x.auth.Authenticate(ctx, eff.Username, eff.Password); err != nil {
			log.WithError(err).Info("login failed")
			return AuthFailed{Err: err}
		}
		log.Info("login")
		return LoginSucceeded{Username: eff.Username}

	case CreateAccount:
		log = log.WithField("user", eff.Username)
		if err := x.auth.SignUp(ctx, eff.Username, eff.Password, eff.Confirm); err != nil {
			log.WithError(err).Info("signup failed")
			return AuthFailed{Err: err}
		}
		log.Info("account created")
		return LoginSucceeded{Username: eff.Username, NewAccount: true}

	case GenerateLesson:
		log = log.WithFields(logrus.Fields{"topic": eff.Topic, "level": eff.Level})
		start := time.Now()
		bundle, err := x.lessons.Generate(ctx, eff.Level, eff.Topic)
		if err != nil {
			log.WithError(err).Error("lesson generation failed")
			return LessonFailed{Topic: eff.Topic, Err: err}
		}
		log.WithField("latency_ms", time.Since(start).Milliseconds()).Info("lesson generated")
		return LessonReady{Topic: eff.Topic, Bundle: bundle}

	case AskTutor:
		log = log.WithField("topic", eff.Topic)
		text, err := x.tutor.Reply(ctx, eff.Topic, eff.Lesson, eff.Transcript)
		if err != nil {
			log.WithError(err).Warn("tutor reply failed")
		}
		return TutorReplied{Topic: eff.Topic, Text: text, Err: err}

	case RecordProgress:
		log = log.WithFields(logrus.Fields{"user": eff.Username, "topic": eff.Topic, "score": eff.Score})
		if err := x.progress.RecordProgress(ctx, eff.Username, eff.Topic, eff.Score); err != nil {
			log.WithError(err).Warn("progress not saved")
			return ProgressSaved{Err: err}
		}
		log.Info("progress saved")
		return ProgressSaved{}

	default:
		panic(fmt.Sprintf("tutor: unhandled effect %T", eff))
	}
}

// Dispatch applies ev and then runs every resulting effect inline,
// feeding results back until none remain. Blocking surfaces such as the
// HTTP API use it; the TUI runs effects asynchronously instead.
func (x *Executor) Dispatch(ctx context.Context, s *State, ev Event) error {
	effects, err := Apply(s, ev)
	if err != nil {
		return err
	}
	for len(effects) > 0 {
		eff := effects[0]
		effects = effects[1:]

		more, err := Apply(s, x.Execute(ctx, s.ID, eff))
		if err != nil {
			return fmt.Errorf("apply result: %w", err)
		}
		effects = append(effects, more...)
	}
	return nil
}
