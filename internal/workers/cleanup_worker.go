package workers

import (
	"context"
	"time"

	"careerbridge_backend/internal/logger"
	"careerbridge_backend/internal/repositories"

	"gorm.io/gorm"
)

// CleanupWorker подчищает протухшие токены в фоне.
// Корректность от него не зависит (живость токена проверяется при
// каждом чтении), это только гигиена таблиц.
type CleanupWorker struct {
	db               *gorm.DB
	registrationRepo repositories.RegistrationTokenRepository
	refreshRepo      repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewCleanupWorker(
	db *gorm.DB,
	registrationRepo repositories.RegistrationTokenRepository,
	refreshRepo repositories.RefreshTokenRepository,
) *CleanupWorker {
	return &CleanupWorker{
		db:               db,
		registrationRepo: registrationRepo,
		refreshRepo:      refreshRepo,
		interval:         time.Hour,
	}
}

// Start запускает фоновую очистку токенов
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CleanupWorker) sweep() {
	if err := w.registrationRepo.DeleteExpired(w.db); err != nil {
		logger.Error("Failed to delete expired registration tokens", "error", err)
	}
	if err := w.refreshRepo.CleanExpiredRefreshTokens(w.db); err != nil {
		logger.Error("Failed to delete expired refresh tokens", "error", err)
	}
}
