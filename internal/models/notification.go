package models

import "time"

// Notification - in-app уведомление зарегистрированного клиента.
// Для проспектов (еще без аккаунта) уведомления уходят только на email.
type Notification struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index"`
	Event   string `gorm:"type:varchar(64);not null"`
	Title   string `gorm:"not null"`
	Message string `gorm:"not null"`
	IsRead  bool   `gorm:"default:false"`
	ReadAt  *time.Time
}
