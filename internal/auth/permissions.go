package auth

import "errors"

// Роли системы: клиент и оператор (админ)
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Permissions список разрешений
var Permissions = map[string][]string{
	RoleAdmin: {
		"consultations:read",
		"consultations:write",
		"payments:verify",
		"clients:read",
		"clients:write",
		"onboarding:approve",
		"applications:write",
		"system:admin",
	},
	RoleClient: {
		"profile:read:self",
		"profile:write:self",
		"onboarding:submit:self",
		"applications:read:self",
		"notifications:read:self",
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction проверяет может ли пользователь выполнить действие
func CanPerformAction(claims *Claims, permission string) bool {
	return HasPermission(claims.Role, permission)
}

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}

// ValidateRole проверяет валидность роли
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleClient:
		return nil
	default:
		return errors.New("invalid role")
	}
}
