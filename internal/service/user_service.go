package service

import (
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService manages staff accounts. Deletion rules follow the store
// hierarchy: nobody deletes their own account, and a MANAGER may only
// deactivate SELLER accounts.
type UserService interface {
	Create(req *model.UserRequest) (*model.UserResponse, error)
	Update(id uuid.UUID, req *model.UserRequest) (*model.UserResponse, error)
	ChangePassword(id uuid.UUID, oldPassword, newPassword string) error
	Delete(actorLogin string, id uuid.UUID) error
	Reactivate(id uuid.UUID) error
	FindActiveByID(id uuid.UUID) (*model.UserResponse, error)
	FindInactiveByID(id uuid.UUID) (*model.UserResponse, error)
	FindActive(limit, offset int) ([]model.UserResponse, error)
	FindInactive(limit, offset int) ([]model.UserResponse, error)
	FindActiveByName(name string, limit, offset int) ([]model.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) Create(req *model.UserRequest) (*model.UserResponse, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByLogin(req.Login); err == nil {
		return nil, fmt.Errorf("login %q: %w", req.Login, model.ErrLoginInUse)
	}

	user := &model.User{
		Name:  req.Name,
		Login: req.Login,
		Role:  req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("login", user.Login),
		zap.String("role", user.Role))
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, req *model.UserRequest) (*model.UserResponse, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}

	if other, err := s.userRepo.FindByLogin(req.Login); err == nil && other.ID != user.ID {
		return nil, fmt.Errorf("login %q: %w", req.Login, model.ErrLoginInUse)
	}

	user.Name = req.Name
	user.Login = req.Login
	user.Role = req.Role
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) ChangePassword(id uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}

	if !user.CheckPassword(oldPassword) {
		return model.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password too short: %w", model.ErrInvalidArgument)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *userService) Delete(actorLogin string, id uuid.UUID) error {
	actor, err := s.userRepo.FindActiveByLogin(actorLogin)
	if err != nil {
		return fmt.Errorf("user %s: %w", actorLogin, model.ErrUserNotFound)
	}

	target, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}

	if actor.ID == target.ID {
		return fmt.Errorf("cannot deactivate own account: %w", model.ErrPermissionDenied)
	}
	if actor.Role == model.RoleManager && target.Role != model.RoleSeller {
		return fmt.Errorf("managers may only deactivate sellers: %w", model.ErrPermissionDenied)
	}

	if err := s.userRepo.SoftDelete(target.ID); err != nil {
		return err
	}

	s.logger.Info("user deactivated",
		zap.String("user_id", target.ID.String()),
		zap.String("by", actor.Login))
	return nil
}

func (s *userService) Reactivate(id uuid.UUID) error {
	if _, err := s.userRepo.FindInactiveByID(id); err != nil {
		return fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}
	return s.userRepo.Restore(id)
}

func (s *userService) FindActiveByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindActiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) FindInactiveByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindInactiveByID(id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, model.ErrUserNotFound)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) FindActive(limit, offset int) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindActive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) FindInactive(limit, offset int) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindInactive(limit, offset)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func (s *userService) FindActiveByName(name string, limit, offset int) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindActiveByName(name, limit, offset)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func toUserResponses(users []model.User) []model.UserResponse {
	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses
}
