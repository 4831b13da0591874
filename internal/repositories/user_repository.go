package repositories

import (
	"errors"
	"time"

	"beautymatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id int64) (*models.User, error)
	Update(user *models.User) error
	UpdateFields(id int64, fields map[string]interface{}) error
	SetBlocked(id int64, blocked bool) error
	SetPrivileged(id int64, privileged bool) error
	SetRating(id int64, rating float64) error
	CountByRole(role models.UserRole) (int64, error)
	CountBlocked() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(id int64) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetBlocked(id int64, blocked bool) error {
	return r.UpdateFields(id, map[string]interface{}{"is_blocked": blocked})
}

func (r *UserRepositoryImpl) SetPrivileged(id int64, privileged bool) error {
	return r.UpdateFields(id, map[string]interface{}{"is_privileged": privileged})
}

func (r *UserRepositoryImpl) SetRating(id int64, rating float64) error {
	return r.UpdateFields(id, map[string]interface{}{"rating": rating})
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountBlocked() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_blocked = ?", true).Count(&count).Error
	return count, err
}
