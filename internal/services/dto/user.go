package dto

import "careerbridge_backend/internal/models"

// UpdateProfileRequest - обновление профиля клиентом
type UpdateProfileRequest struct {
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
	ResumeURL  string `json:"resume_url,omitempty" validate:"omitempty,url"`
}

// UserCriteria - фильтр списка пользователей для админа
type UserCriteria struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UserListResponse - страница списка пользователей
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// BuildUserDTO - единое представление пользователя в ответах
func BuildUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		Status:             u.Status,
		OnboardingComplete: u.OnboardingComplete,
		TemporaryPassword:  u.TemporaryPassword,
		CreatedAt:          u.CreatedAt,
	}
}
