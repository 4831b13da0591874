package repositories

import (
	"errors"

	"beautymatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDuplicateRating = errors.New("rating already exists")

type RatingRepository interface {
	Create(rating *models.Rating) error
	Exists(responseID, raterID int64) (bool, error)
	ListByRated(userID int64) ([]models.Rating, error)
	CountByRated(userID int64) (int64, error)
}

type RatingRepositoryImpl struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &RatingRepositoryImpl{db: db}
}

func (r *RatingRepositoryImpl) Create(rating *models.Rating) error {
	err := r.db.Create(rating).Error
	if err != nil {
		// уникальный индекс (response_id, rater_id)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRating
		}
		return err
	}
	return nil
}

func (r *RatingRepositoryImpl) Exists(responseID, raterID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("response_id = ? AND rater_id = ?", responseID, raterID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingRepositoryImpl) ListByRated(userID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("rated_id = ?", userID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepositoryImpl) CountByRated(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Where("rated_id = ?", userID).Count(&count).Error
	return count, err
}
