package workers

import (
	"context"
	"time"

	"beautymatch_backend/internal/logger"
	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
)

// SubscriptionWorker периодически гасит истекшие подписки.
// Предикат истечения тот же, что и на ленивом пути проверки:
// is_active AND end_date < now.
type SubscriptionWorker struct {
	subRepo  repositories.SubscriptionRepository
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewSubscriptionWorker(subRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository, interval time.Duration) *SubscriptionWorker {
	return &SubscriptionWorker{
		subRepo:  subRepo,
		userRepo: userRepo,
		interval: interval,
	}
}

// Start запускает фоновую проверку истечения подписок
func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SubscriptionWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep - один проход. Ошибка по записи логируется, проход продолжается.
func (w *SubscriptionWorker) Sweep(ctx context.Context) {
	now := time.Now()

	expired, err := w.subRepo.FindExpired(now)
	if err != nil {
		logger.WorkerLog("subscription_worker", "find_expired", err)
		return
	}

	deactivated := 0
	for i := range expired {
		sub := &expired[i]

		if err := w.subRepo.Deactivate(sub.ID); err != nil {
			logger.WorkerLog("subscription_worker", "deactivate", err)
			continue
		}
		deactivated++

		if sub.Role != models.UserRoleModel {
			continue
		}

		// Привилегия снимается, только если у модели не осталось
		// другой живой подписки
		stillLive, err := w.subRepo.HasLive(sub.UserID, models.UserRoleModel, now)
		if err != nil {
			logger.WorkerLog("subscription_worker", "check_live", err)
			continue
		}
		if !stillLive {
			if err := w.userRepo.SetPrivileged(sub.UserID, false); err != nil {
				logger.WorkerLog("subscription_worker", "revoke_privilege", err)
			}
		}
	}

	if deactivated > 0 {
		logger.Info("expired subscriptions deactivated", "count", deactivated)
	}
}
