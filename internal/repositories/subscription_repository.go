package repositories

import (
	"errors"
	"time"

	"beautymatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	// FindActive - самая свежая действующая подписка (is_active AND end_date > now).
	// Пустая роль означает любую роль.
	FindActive(userID int64, role models.UserRole, now time.Time) (*models.Subscription, error)
	HasLive(userID int64, role models.UserRole, now time.Time) (bool, error)
	// HasTrial - пробный период уже использован для пары (user, role)
	HasTrial(userID int64, role models.UserRole) (bool, error)
	FindByPaymentID(paymentID string) (*models.Subscription, error)
	FindExpired(now time.Time) ([]models.Subscription, error)
	Deactivate(id int64) error
	CountActive(now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindActive(userID int64, role models.UserRole, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	q := r.db.Where("user_id = ? AND is_active = ? AND end_date > ?", userID, true, now)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Order("end_date DESC").First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) HasLive(userID int64, role models.UserRole, now time.Time) (bool, error) {
	var count int64
	q := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND is_active = ? AND end_date > ?", userID, true, now)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *SubscriptionRepositoryImpl) HasTrial(userID int64, role models.UserRole) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND role = ? AND payment_id = ?", userID, role, models.TrialPaymentID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubscriptionRepositoryImpl) FindByPaymentID(paymentID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("payment_id = ?", paymentID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindExpired(now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("is_active = ? AND end_date < ?", true, now).
		Order("end_date ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepositoryImpl) Deactivate(id int64) error {
	result := r.db.Model(&models.Subscription{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) CountActive(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("is_active = ? AND end_date > ?", true, now).
		Count(&count).Error
	return count, err
}
