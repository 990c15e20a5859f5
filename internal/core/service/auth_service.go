package service

import (
	"autoshop/internal/auth"
	"autoshop/internal/core/model"
	"autoshop/internal/core/repository"
)

type AuthService interface {
	Register(name, email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(name, email, password string) (*model.User, string, error) {
	email = model.NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := model.NewUser(name, email, hash)
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Name, user.Admin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a
// wrong password, so callers cannot enumerate registered users.
func (s *authService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(model.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Name, user.Admin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
