package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDuplicateUsername is returned when signing up with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
)

// StorageError wraps an I/O failure on a write the caller may want to
// report without aborting the surrounding flow.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Account is a registered learner.
type Account struct {
	Username string

	// PasswordHash is the bcrypt hash stored in the password column.
	PasswordHash string
}

// ProgressRecord is one completed quiz.
type ProgressRecord struct {
	ID        int
	Username  string
	Topic     string
	Score     int
	CreatedAt time.Time
}

// AccountRepo stores learner credentials.
type AccountRepo interface {
	// CreateAccount inserts a new account. Returns ErrDuplicateUsername
	// if the username is taken.
	CreateAccount(ctx context.Context, username, passwordHash string) error

	// GetAccount returns the account or ErrNotFound.
	GetAccount(ctx context.Context, username string) (*Account, error)
}

// ProgressRepo stores quiz results. Records are append-only.
type ProgressRepo interface {
	// RecordProgress appends a quiz result. Failures are *StorageError.
	RecordProgress(ctx context.Context, username, topic string, score int) error

	// ListProgress returns a learner's results, newest first.
	// A limit of 0 returns everything.
	ListProgress(ctx context.Context, username string, limit int) ([]ProgressRecord, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
