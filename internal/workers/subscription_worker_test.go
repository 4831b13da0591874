package workers_test

import (
	"context"
	"testing"
	"time"

	"beautymatch_backend/internal/models"
	"beautymatch_backend/internal/repositories"
	"beautymatch_backend/internal/workers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newWorkerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Subscription{}))
	return db
}

func createSubscription(t *testing.T, db *gorm.DB, userID int64, role models.UserRole, endDate time.Time) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		UserID:    userID,
		Role:      role,
		StartDate: endDate.AddDate(0, 0, -30),
		EndDate:   endDate,
		IsActive:  true,
		PaymentID: "pay-worker",
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestSweep_DeactivatesExpiredAndRevokesPrivilege(t *testing.T) {
	t.Parallel()
	db := newWorkerTestDB(t)
	subRepo := repositories.NewSubscriptionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	model := &models.User{ID: 700, Username: "m", Role: models.UserRoleModel, IsPrivileged: true}
	require.NoError(t, userRepo.Create(model))

	expired := createSubscription(t, db, model.ID, models.UserRoleModel, time.Now().Add(-time.Hour))

	worker := workers.NewSubscriptionWorker(subRepo, userRepo, time.Hour)
	worker.Sweep(context.Background())

	var fresh models.Subscription
	require.NoError(t, db.First(&fresh, expired.ID).Error)
	assert.False(t, fresh.IsActive)

	updated, err := userRepo.FindByID(model.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPrivileged, "без живых подписок привилегия снимается")
}

func TestSweep_KeepsPrivilegeWhileAnotherSubscriptionLives(t *testing.T) {
	t.Parallel()
	db := newWorkerTestDB(t)
	subRepo := repositories.NewSubscriptionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	model := &models.User{ID: 701, Username: "m2", Role: models.UserRoleModel, IsPrivileged: true}
	require.NoError(t, userRepo.Create(model))

	// Истекшая и живая подписки одновременно: продление до окончания старой
	createSubscription(t, db, model.ID, models.UserRoleModel, time.Now().Add(-time.Hour))
	createSubscription(t, db, model.ID, models.UserRoleModel, time.Now().AddDate(0, 0, 20))

	worker := workers.NewSubscriptionWorker(subRepo, userRepo, time.Hour)
	worker.Sweep(context.Background())

	updated, err := userRepo.FindByID(model.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPrivileged)
}

func TestSweep_IgnoresCustomerPrivilege(t *testing.T) {
	t.Parallel()
	db := newWorkerTestDB(t)
	subRepo := repositories.NewSubscriptionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	customer := &models.User{ID: 702, Username: "c", Role: models.UserRoleCustomer}
	require.NoError(t, userRepo.Create(customer))
	createSubscription(t, db, customer.ID, models.UserRoleCustomer, time.Now().Add(-time.Hour))

	worker := workers.NewSubscriptionWorker(subRepo, userRepo, time.Hour)
	worker.Sweep(context.Background())

	var count int64
	require.NoError(t, db.Model(&models.Subscription{}).Where("is_active = ?", true).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSweep_SecondPassIsNoop(t *testing.T) {
	t.Parallel()
	db := newWorkerTestDB(t)
	subRepo := repositories.NewSubscriptionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	model := &models.User{ID: 703, Username: "m3", Role: models.UserRoleModel, IsPrivileged: true}
	require.NoError(t, userRepo.Create(model))
	createSubscription(t, db, model.ID, models.UserRoleModel, time.Now().Add(-time.Hour))

	worker := workers.NewSubscriptionWorker(subRepo, userRepo, time.Hour)
	worker.Sweep(context.Background())
	// Повторный проход не находит уже погашенные записи
	worker.Sweep(context.Background())

	var inactive int64
	require.NoError(t, db.Model(&models.Subscription{}).Where("is_active = ?", false).Count(&inactive).Error)
	assert.Equal(t, int64(1), inactive)
}
