package service

import (
	"errors"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/jwt"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signup, login and identity lookup
type AuthService interface {
	Signup(req *domain.SignupRequest) (*domain.LoginResponse, error)
	Login(req *domain.LoginRequest) (*domain.LoginResponse, error)
	Me(userID uint64) (*domain.UserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	boards     repository.BoardRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users repository.UserRepository,
	boards repository.BoardRepository,
	jwtManager *jwt.Manager,
) AuthService {
	return &authService{users: users, boards: boards, jwtManager: jwtManager}
}

// Signup registers a user and joins them to the default board as a
// role-less (read-only) member
func (s *authService) Signup(req *domain.SignupRequest) (*domain.LoginResponse, error) {
	exists, err := s.users.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if board, err := s.boards.FindDefault(); err == nil {
		if err := s.boards.UpsertMember(&domain.Membership{
			BoardID:   board.ID,
			UserID:    user.ID,
			BoardRole: domain.RoleNone,
		}); err != nil {
			logger.Warn("default board join failed for user %d: %v", user.ID, err)
		}
	} else if !errors.Is(err, common.ErrBoardNotFound) {
		return nil, err
	}

	return s.issue(user)
}

func (s *authService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) Me(userID uint64) (*domain.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *authService) issue(user *domain.User) (*domain.LoginResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.FullName, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
