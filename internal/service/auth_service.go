package service

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(login, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{userRepo: userRepo, logger: logger}
}

func (s *authService) Login(login, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindActiveByLogin(login)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		s.logger.Warn("failed login attempt", zap.String("login", login))
		return nil, model.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Login, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("login", user.Login))
	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
