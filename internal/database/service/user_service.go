package service

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/backend-go/internal/database/models"
	"github.com/recipebox/backend-go/internal/database/repository"
)

// UserService defines the interface for profile management
type UserService interface {
	GetUser(id uint) (*models.User, error)
	UpdateProfile(id uint, name, password *string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

// UpdateProfile applies the supplied fields only; the email and the
// staff/superuser flags are not changeable through this path.
func (s *userService) UpdateProfile(id uint, name, password *string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		s.logger.Error("❌ [UserService] Failed to update profile", "user_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] Profile updated", "user_id", id)
	return user, nil
}
