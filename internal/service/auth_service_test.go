package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuthService(t *testing.T) (AuthService, *fixture) {
	f := newFixture(t)
	return NewAuthService(f.userRepo, zaptest.NewLogger(t)), f
}

func seedLogin(t *testing.T, f *fixture, login, password, role string) *model.User {
	t.Helper()
	user := &model.User{Name: "User " + login, Login: login, Role: role}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func TestLogin_IssuesValidToken(t *testing.T) {
	svc, f := newAuthService(t)
	user := seedLogin(t, f, "maria", "secret1", model.RoleSeller)

	resp, err := svc.Login("maria", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, model.RoleSeller, resp.User.Role)

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "maria", claims.Login)
	assert.Equal(t, model.RoleSeller, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, f := newAuthService(t)
	seedLogin(t, f, "maria", "secret1", model.RoleSeller)

	_, err := svc.Login("maria", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login("ghost", "secret1")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_DeactivatedUser(t *testing.T) {
	svc, f := newAuthService(t)
	user := seedLogin(t, f, "maria", "secret1", model.RoleSeller)
	require.NoError(t, f.userRepo.SoftDelete(user.ID))

	_, err := svc.Login("maria", "secret1")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
