// Copyright (c) 2026 PodCentral. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/sec"
	"github.com/podcentral/api/internal/users/auth"
)

// # In-Memory Fakes

var errMissing = errors.New("not found")

type fakeUserRepository struct {
	users map[string]*auth.User // keyed by id
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repository.users[id]; ok {
		return user, nil
	}
	return nil, errMissing
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errMissing
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errMissing
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.users[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	repository.users[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := repository.users[userID]; ok {
		user.PasswordHash = newHash
		return nil
	}
	return errMissing
}

func (repository *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(repository.users, id)
	return nil
}

func (repository *fakeUserRepository) MarkVerified(_ context.Context, userID string) error {
	if user, ok := repository.users[userID]; ok {
		user.IsVerified = true
		return nil
	}
	return errMissing
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session // keyed by token hash
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.sessions[session.TokenHash] = session
	return nil
}

func (repository *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repository.sessions[tokenHash]
	if !ok || session.IsRevoked || time.Now().After(session.ExpiresAt) {
		return nil, errMissing
	}
	return session, nil
}

func (repository *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range repository.sessions {
		if session.ID == sessionID {
			session.IsRevoked = true
			return nil
		}
	}
	return errMissing
}

func (repository *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range repository.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range repository.sessions {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	return nil
}

// fakeTokenStore backs both the reset and verification token repositories.
type fakeTokenStore struct {
	tokens map[string]string // token → user id
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (store *fakeTokenStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	store.tokens[token] = userID
	return nil
}

func (store *fakeTokenStore) Get(_ context.Context, token string) (string, error) {
	if userID, ok := store.tokens[token]; ok {
		return userID, nil
	}
	return "", errMissing
}

func (store *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(store.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "signed:" + userID + ":" + username + ":" + role, nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	resets   *fakeTokenStore
	verifies *fakeTokenStore
}

func newFixture() *fixture {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	resets := newFakeTokenStore()
	verifies := newFakeTokenStore()
	return &fixture{
		service:  auth.NewService(users, sessions, resets, verifies, fakeTokenProvider{}),
		users:    users,
		sessions: sessions,
		resets:   resets,
		verifies: verifies,
	}
}

func register(t *testing.T, fix *fixture) *auth.User {
	t.Helper()
	user, err := fix.service.Register(context.Background(), auth.RegisterInput{
		Username:    "casey",
		Email:       "casey@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Casey",
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestService_Register(t *testing.T) {
	fix := newFixture()

	user := register(t, fix)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)

	// Plain text must never be stored; the hash must verify round-trip.
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter2hunter2", user.PasswordHash))

	// A verification token is parked for the email side effect.
	require.Len(t, fix.verifies.tokens, 1)
	for _, userID := range fix.verifies.tokens {
		assert.Equal(t, user.ID, userID)
	}
}

func TestService_Register_Conflicts(t *testing.T) {
	fix := newFixture()
	register(t, fix)

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{
			name:  "duplicate email",
			input: auth.RegisterInput{Username: "other", Email: "casey@example.com", Password: "hunter2hunter2"},
		},
		{
			name:  "duplicate username",
			input: auth.RegisterInput{Username: "casey", Email: "other@example.com", Password: "hunter2hunter2"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := fix.service.Register(context.Background(), testCase.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "CONFLICT", appError.Code)
		})
	}
}

// # Login

func TestService_Login(t *testing.T) {
	fix := newFixture()
	user := register(t, fix)

	// Either the email or the username resolves the same account.
	for _, login := range []string{"casey@example.com", "casey"} {
		session, err := fix.service.Login(context.Background(), auth.LoginInput{
			Login:    login,
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		assert.Equal(t, user.ID, session.User.ID)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)

		// The stored session holds the hash, never the raw refresh token.
		stored, err := fix.sessions.FindByTokenHash(context.Background(), sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.UserID)
	}
}

func TestService_Login_BadCredentials(t *testing.T) {
	fix := newFixture()
	register(t, fix)

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "wrong password", login: "casey", password: "wrong-password"},
		{name: "unknown account", login: "nobody", password: "hunter2hunter2"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := fix.service.Login(context.Background(), auth.LoginInput{
				Login:    testCase.login,
				Password: testCase.password,
			})
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "UNAUTHORIZED", appError.Code)
		})
	}
}

// # Session Rotation

func TestService_RefreshSession_RotatesToken(t *testing.T) {
	fix := newFixture()
	register(t, fix)

	session, err := fix.service.Login(context.Background(), auth.LoginInput{
		Login:    "casey",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	rotated, err := fix.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token must fail.
	_, err = fix.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)

	// The rotated token remains live.
	_, err = fix.service.RefreshSession(context.Background(), rotated.RefreshToken, "", "")
	require.NoError(t, err)
}

func TestService_Logout(t *testing.T) {
	fix := newFixture()
	register(t, fix)

	session, err := fix.service.Login(context.Background(), auth.LoginInput{
		Login:    "casey",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	require.NoError(t, fix.service.Logout(context.Background(), session.RefreshToken))

	// The revoked session can no longer refresh.
	_, err = fix.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)

	// Logging out an unknown token is a no-op, not an error.
	assert.NoError(t, fix.service.Logout(context.Background(), "never-issued"))
}

// # Password Recovery

func TestService_ResetPassword(t *testing.T) {
	fix := newFixture()
	register(t, fix)

	token, err := fix.service.RequestPasswordReset(context.Background(), "casey@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, fix.service.ResetPassword(context.Background(), token, "a-new-password-42"))

	// The new password works and the token is single-use.
	_, err = fix.service.Login(context.Background(), auth.LoginInput{Login: "casey", Password: "a-new-password-42"})
	require.NoError(t, err)
	assert.Error(t, fix.service.ResetPassword(context.Background(), token, "another-password"))
}

func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	fix := newFixture()

	// Unknown emails return silently to prevent account enumeration.
	token, err := fix.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestService_VerifyEmail(t *testing.T) {
	fix := newFixture()
	user := register(t, fix)

	var token string
	for issued := range fix.verifies.tokens {
		token = issued
	}

	require.NoError(t, fix.service.VerifyEmail(context.Background(), token))
	assert.True(t, fix.users.users[user.ID].IsVerified)

	// Single use.
	assert.Error(t, fix.service.VerifyEmail(context.Background(), token))
}
