// Package auth registers learners and checks their credentials against
// the account store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/datapath/internal/store"
)

var (
	ErrEmptyFields        = errors.New("please fill out all fields")
	ErrMissingCredentials = errors.New("please enter both username and password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service implements sign-up and login on top of an AccountRepo.
type Service struct {
	accounts store.AccountRepo
	cost     int
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates an auth service.
func NewService(accounts store.AccountRepo, opts ...Option) *Service {
	s := &Service{accounts: accounts, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SignUp creates an account. It returns ErrEmptyFields when any input is
// blank, ErrPasswordMismatch when confirm differs from password, and
// store.ErrDuplicateUsername when the username is taken.
func (s *Service) SignUp(ctx context.Context, username, password, confirm string) error {
	if strings.TrimSpace(username) == "" || password == "" || confirm == "" {
		return ErrEmptyFields
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.CreateAccount(ctx, username, string(hash))
}

// Authenticate checks a username/password pair. Blank input yields
// ErrMissingCredentials; unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	acct, err := s.accounts.GetAccount(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
