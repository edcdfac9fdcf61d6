package services

import (
	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/models"
	"careerbridge_backend/internal/repositories"
	"careerbridge_backend/internal/services/dto"
	"careerbridge_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService - профиль клиента и административное управление аккаунтами
type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	List(db *gorm.DB, criteria dto.UserCriteria) (*dto.UserListResponse, error)

	// Suspend деактивирует аккаунт (soft delete): запись остается,
	// пока на клиента ссылаются отклики
	Suspend(db *gorm.DB, userID string) error
	Reactivate(db *gorm.DB, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	userDTO := dto.BuildUserDTO(user)
	return &userDTO, nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.TargetRole != "" {
		user.TargetRole = req.TargetRole
	}
	if req.ResumeURL != "" {
		user.ResumeURL = req.ResumeURL
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	userDTO := dto.BuildUserDTO(user)
	return &userDTO, nil
}

func (s *userService) List(db *gorm.DB, criteria dto.UserCriteria) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Role:     models.UserRole(criteria.Role),
		Status:   models.UserStatus(criteria.Status),
		Search:   criteria.Search,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userDTOs := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		userDTOs = append(userDTOs, dto.BuildUserDTO(&users[i]))
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	return &dto.UserListResponse{
		Users:      userDTOs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *userService) Suspend(db *gorm.DB, userID string) error {
	if err := s.userRepo.Deactivate(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.Info("user suspended", "user_id", userID)
	return nil
}

func (s *userService) Reactivate(db *gorm.DB, userID string) error {
	if err := s.userRepo.UpdateStatus(db, userID, models.UserStatusActive); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.Info("user reactivated", "user_id", userID)
	return nil
}
