package service

import (
	"testing"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newUserService(t *testing.T) (UserService, *fixture) {
	f := newFixture(t)
	return NewUserService(f.userRepo, zaptest.NewLogger(t)), f
}

func userReq(name, login, role string) *model.UserRequest {
	return &model.UserRequest{Name: name, Login: login, Password: "secret1", Role: role}
}

func TestUserCreate_HashesPassword(t *testing.T) {
	svc, f := newUserService(t)

	created, err := svc.Create(userReq("Maria Silva", "maria", model.RoleSeller))
	require.NoError(t, err)

	stored, err := f.userRepo.FindByID(created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, stored.CheckPassword("secret1"))
}

func TestUserCreate_LoginTaken(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(userReq("Maria Silva", "maria", model.RoleSeller))
	require.NoError(t, err)

	_, err = svc.Create(userReq("Other Maria", "maria", model.RoleManager))
	assert.ErrorIs(t, err, model.ErrLoginInUse)
}

func TestUserCreate_Invalid(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(&model.UserRequest{Name: "X", Login: "x", Password: "12345", Role: model.RoleSeller})
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "short password")

	_, err = svc.Create(&model.UserRequest{Name: "X", Login: "x", Password: "secret1", Role: "OWNER"})
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "unknown role")
}

func TestUserChangePassword(t *testing.T) {
	svc, f := newUserService(t)

	created, err := svc.Create(userReq("Maria Silva", "maria", model.RoleSeller))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(created.ID, "wrong", "newsecret"), model.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(created.ID, "secret1", "short"), model.ErrInvalidArgument)

	require.NoError(t, svc.ChangePassword(created.ID, "secret1", "newsecret"))
	stored, err := f.userRepo.FindByID(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.CheckPassword("newsecret"))
	assert.False(t, stored.CheckPassword("secret1"))
}

func TestUserDelete_Rules(t *testing.T) {
	svc, _ := newUserService(t)

	admin, err := svc.Create(userReq("Admin", "admin", model.RoleAdmin))
	require.NoError(t, err)
	manager, err := svc.Create(userReq("Manager", "manager", model.RoleManager))
	require.NoError(t, err)
	seller, err := svc.Create(userReq("Seller", "seller", model.RoleSeller))
	require.NoError(t, err)

	// Nobody deactivates their own account.
	assert.ErrorIs(t, svc.Delete("admin", admin.ID), model.ErrPermissionDenied)

	// A manager may only deactivate sellers.
	assert.ErrorIs(t, svc.Delete("manager", admin.ID), model.ErrPermissionDenied)
	assert.NoError(t, svc.Delete("manager", seller.ID))

	// An admin may deactivate anyone else.
	assert.NoError(t, svc.Delete("admin", manager.ID))
}

func TestUserDelete_UnknownTarget(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(userReq("Admin", "admin", model.RoleAdmin))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete("admin", uuid.New()), model.ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete("ghost", uuid.New()), model.ErrUserNotFound)
}

func TestUserReactivate_RoundTrip(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(userReq("Admin", "admin", model.RoleAdmin))
	require.NoError(t, err)
	seller, err := svc.Create(userReq("Seller", "seller", model.RoleSeller))
	require.NoError(t, err)

	require.NoError(t, svc.Delete("admin", seller.ID))
	_, err = svc.FindActiveByID(seller.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	require.NoError(t, svc.Reactivate(seller.ID))
	restored, err := svc.FindActiveByID(seller.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.VoidedAt)
}

func TestUserUpdate_LoginTakenByOther(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(userReq("Maria", "maria", model.RoleSeller))
	require.NoError(t, err)
	other, err := svc.Create(userReq("Joana", "joana", model.RoleSeller))
	require.NoError(t, err)

	_, err = svc.Update(other.ID, userReq("Joana", "maria", model.RoleSeller))
	assert.ErrorIs(t, err, model.ErrLoginInUse)

	updated, err := svc.Update(other.ID, userReq("Joana Prado", "joana", model.RoleManager))
	require.NoError(t, err)
	assert.Equal(t, "Joana Prado", updated.Name)
	assert.Equal(t, model.RoleManager, updated.Role)
}
