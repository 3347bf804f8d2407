package auth

import (
	"context"
	"testing"

	"github.com/albastory/workforce-backend-go/internal/domain/auth"
	"github.com/albastory/workforce-backend-go/internal/domain/user"
	"github.com/albastory/workforce-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by email
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if _, ok := f.users[u.Email]; ok {
		return user.User{}, user.ErrUserEmailExists
	}
	f.seq++
	u.ID = "user-1"
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func newTestService() (*AuthServiceImpl, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return &AuthServiceImpl{
		userRepo:   repo,
		jwtService: jwt.NewJWTService("test-secret", "15m", "168h"),
	}, repo
}

func signupRequest() auth.SignupRequest {
	return auth.SignupRequest{
		Email:    "boss@example.com",
		Password: "secret-password",
		Name:     "Boss",
		Role:     "boss",
	}
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	assert.Equal(t, "boss@example.com", res.User.Email)
	assert.Equal(t, "boss", res.User.Role)
	assert.NotEmpty(t, res.Token.AccessToken)
	assert.NotEmpty(t, res.Token.RefreshToken)
	assert.Equal(t, "Bearer", res.Token.TokenType)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestSignupStoresHashedPassword(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	stored := repo.users["boss@example.com"]
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "boss@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.User.ID)
	assert.NotEmpty(t, res.Token.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "boss@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
