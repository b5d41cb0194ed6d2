package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

// UserService 管理端的用户操作
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit)
}

func (s *UserService) SetRole(userID uint, role model.UserRole) error {
	switch role {
	case model.Student, model.Instructor, model.Admin:
	default:
		return util.NewValidationError("role", "unrecognized role")
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.SetRole(userID, role)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}
