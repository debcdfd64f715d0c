package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/emrekole/takip/internal/auth"
)

const testSecret = "test-secret"

func hash(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

// issueToken opens a session against the mock and returns the signed token
// together with the session row the service wrote.
func issueToken(t *testing.T, svc *auth.Service, repo *auth.MockRepository, userID uuid.UUID) (string, *auth.Session) {
	t.Helper()

	var captured *auth.Session

	repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *auth.Session) error {
			captured = s
			return nil
		})

	token, err := svc.IssueSession(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, captured)

	return token, captured
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(nil, auth.ErrNotFound)
	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *auth.User) error {
			u.ID = uuid.New()
			return nil
		})

	svc := auth.NewService(repo, testSecret, time.Hour)

	u, err := svc.Register(context.Background(), auth.RegisterParams{
		Email:    "ali@example.com",
		Name:     "Ali",
		Password: "gizli123",
	})
	require.NoError(t, err)

	assert.Equal(t, auth.RoleUser, u.Role)
	assert.Equal(t, auth.StatusActive, u.Status)
	assert.NotEqual(t, "gizli123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("gizli123")))
}

func TestService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(&auth.User{ID: uuid.New()}, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), auth.RegisterParams{
		Email:    "ali@example.com",
		Password: "gizli123",
	})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestService_LoginThenResolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	u := &auth.User{
		ID:           userID,
		Email:        "ali@example.com",
		PasswordHash: hash(t, "gizli123"),
		Role:         auth.RoleUser,
		Status:       auth.StatusActive,
	}

	var session *auth.Session

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(u, nil)
	repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *auth.Session) error {
			session = s
			return nil
		})

	svc := auth.NewService(repo, testSecret, time.Hour)

	got, token, err := svc.Login(context.Background(), "ali@example.com", "gizli123")
	require.NoError(t, err)
	assert.Equal(t, userID, got.ID)
	require.NotEmpty(t, token)
	require.NotNil(t, session)

	repo.EXPECT().GetSession(gomock.Any(), session.ID).Return(session, nil)
	repo.EXPECT().GetUser(gomock.Any(), userID).Return(u, nil)

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), "ali@example.com").Return(&auth.User{
		PasswordHash: hash(t, "gizli123"),
		Status:       auth.StatusActive,
	}, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ali@example.com", "yanlis")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, auth.ErrNotFound)

	svc := auth.NewService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "yok@example.com", "x")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Login_Suspended(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(&auth.User{
		ID:           uuid.New(),
		PasswordHash: hash(t, "gizli123"),
		Status:       auth.StatusSuspended,
	}, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ali@example.com", "gizli123")
	assert.ErrorIs(t, err, auth.ErrSuspended)
}

func TestService_Resolve_SessionRowGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, testSecret, time.Hour)

	// The token stays cryptographically valid. Only the row matters.
	token, session := issueToken(t, svc, repo, uuid.New())
	repo.EXPECT().GetSession(gomock.Any(), session.ID).Return(nil, auth.ErrNotFound)

	_, err := svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestService_Resolve_ExpiredSessionDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, testSecret, time.Hour)

	token, session := issueToken(t, svc, repo, uuid.New())

	expired := &auth.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	repo.EXPECT().GetSession(gomock.Any(), session.ID).Return(expired, nil)
	repo.EXPECT().DeleteSession(gomock.Any(), session.ID).Return(nil)

	_, err := svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestService_Resolve_SuspendedUserLosesAllSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, testSecret, time.Hour)

	token, session := issueToken(t, svc, repo, userID)

	repo.EXPECT().GetSession(gomock.Any(), session.ID).Return(session, nil)
	repo.EXPECT().GetUser(gomock.Any(), userID).Return(&auth.User{
		ID:     userID,
		Status: auth.StatusSuspended,
	}, nil)
	repo.EXPECT().DeleteUserSessions(gomock.Any(), userID).Return(int64(3), nil)

	_, err := svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrSuspended)
}

func TestService_Resolve_GarbageToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := auth.NewService(auth.NewMockRepository(ctrl), testSecret, time.Hour)

	_, err := svc.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestService_Resolve_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	other := auth.NewService(repo, "other-secret", time.Hour)

	token, _ := issueToken(t, other, repo, uuid.New())

	svc := auth.NewService(auth.NewMockRepository(ctrl), testSecret, time.Hour)

	_, err := svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := auth.NewService(repo, testSecret, time.Hour)

	token, session := issueToken(t, svc, repo, uuid.New())
	repo.EXPECT().DeleteSession(gomock.Any(), session.ID).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), token))
}

func TestService_Logout_GarbageTokenIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := auth.NewService(auth.NewMockRepository(ctrl), testSecret, time.Hour)

	assert.NoError(t, svc.Logout(context.Background(), "bozuk"))
}

func TestService_Suspend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().UpdateUserStatus(gomock.Any(), userID, auth.StatusSuspended).Return(nil)
	repo.EXPECT().DeleteUserSessions(gomock.Any(), userID).Return(int64(2), nil)

	svc := auth.NewService(repo, testSecret, time.Hour)
	require.NoError(t, svc.Suspend(context.Background(), userID))
}
