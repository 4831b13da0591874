package repositories

import (
	"errors"
	"time"

	"beautymatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	// Заявки заказчиков
	CreateRequest(req *models.ServiceRequest) error
	FindRequestByID(id int64) (*models.ServiceRequest, error)
	UpdateRequestFields(id int64, fields map[string]interface{}) error
	ListRequestsByCustomer(customerID int64) ([]models.ServiceRequest, error)
	ListOpenRequests(category string) ([]models.ServiceRequest, error)
	CountRequests() (int64, error)

	// Посты моделей
	CreatePost(post *models.AvailabilityPost) error
	FindPostByID(id int64) (*models.AvailabilityPost, error)
	UpdatePostFields(id int64, fields map[string]interface{}) error
	ListPostsByModel(modelID int64) ([]models.AvailabilityPost, error)
	ListOpenPosts(category string) ([]models.AvailabilityPost, error)
	// HasRecentOpenPost - есть ли у модели открытый пост моложе since
	HasRecentOpenPost(modelID int64, since time.Time) (bool, error)
	CountPosts() (int64, error)
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) CreateRequest(req *models.ServiceRequest) error {
	return r.db.Create(req).Error
}

func (r *ListingRepositoryImpl) FindRequestByID(id int64) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := r.db.Preload("Customer").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *ListingRepositoryImpl) UpdateRequestFields(id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) ListRequestsByCustomer(customerID int64) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	err := r.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *ListingRepositoryImpl) ListOpenRequests(category string) ([]models.ServiceRequest, error) {
	var reqs []models.ServiceRequest
	q := r.db.Where("is_closed = ?", false)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *ListingRepositoryImpl) CountRequests() (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceRequest{}).Count(&count).Error
	return count, err
}

func (r *ListingRepositoryImpl) CreatePost(post *models.AvailabilityPost) error {
	return r.db.Create(post).Error
}

func (r *ListingRepositoryImpl) FindPostByID(id int64) (*models.AvailabilityPost, error) {
	var post models.AvailabilityPost
	err := r.db.Preload("Model").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *ListingRepositoryImpl) UpdatePostFields(id int64, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&models.AvailabilityPost{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) ListPostsByModel(modelID int64) ([]models.AvailabilityPost, error) {
	var posts []models.AvailabilityPost
	err := r.db.Where("model_id = ?", modelID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *ListingRepositoryImpl) ListOpenPosts(category string) ([]models.AvailabilityPost, error) {
	var posts []models.AvailabilityPost
	q := r.db.Where("is_closed = ?", false)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *ListingRepositoryImpl) HasRecentOpenPost(modelID int64, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.AvailabilityPost{}).
		Where("model_id = ? AND is_closed = ? AND created_at > ?", modelID, false, since).
		Count(&count).Error
	return count > 0, err
}

func (r *ListingRepositoryImpl) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.AvailabilityPost{}).Count(&count).Error
	return count, err
}
