package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/datapath/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st.Accounts(), WithCost(bcrypt.MinCost)), st
}

func TestSignUpThenAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "ada", "pw", "pw"))
	assert.NoError(t, svc.Authenticate(ctx, "ada", "pw"))
	assert.ErrorIs(t, svc.Authenticate(ctx, "ada", "wrong"), ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name                        string
		username, password, confirm string
		want                        error
	}{
		{"empty username", "", "pw", "pw", ErrEmptyFields},
		{"blank username", "   ", "pw", "pw", ErrEmptyFields},
		{"empty password", "ada", "", "pw", ErrEmptyFields},
		{"empty confirm", "ada", "pw", "", ErrEmptyFields},
		{"mismatch", "ada", "pw", "px", ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.SignUp(ctx, tt.username, tt.password, tt.confirm), tt.want)
		})
	}
}

func TestSignUpDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "ada", "pw", "pw"))
	assert.ErrorIs(t, svc.SignUp(ctx, "ada", "other", "other"), store.ErrDuplicateUsername)

	// Original password still works.
	assert.NoError(t, svc.Authenticate(ctx, "ada", "pw"))
}

func TestAuthenticateMissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Authenticate(context.Background(), "", "pw"), ErrMissingCredentials)
	assert.ErrorIs(t, svc.Authenticate(context.Background(), "ada", ""), ErrMissingCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.Authenticate(context.Background(), "ghost", "pw"), ErrInvalidCredentials)
}

func TestPasswordIsNotStoredInPlaintext(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "ada", "secret", "secret"))
	acct, err := st.Accounts().GetAccount(ctx, "ada")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", acct.PasswordHash)
}
