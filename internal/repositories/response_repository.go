package repositories

import (
	"errors"
	"time"

	"beautymatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrResponseNotFound  = errors.New("response not found")
	ErrDuplicateResponse = errors.New("response already exists")
	ErrDuplicateOffer    = errors.New("offer already exists")
)

type ResponseRepository interface {
	CreateResponse(resp *models.ModelResponse) error
	FindResponseByID(id int64) (*models.ModelResponse, error)
	UpdateResponseStatus(id int64, status models.ResponseStatus) error
	// CountActiveByRequest - отклики, занимающие квоту (все кроме rejected)
	CountActiveByRequest(requestID int64) (int64, error)
	ExistsResponse(requestID, modelID int64) (bool, error)
	ListByModel(modelID int64) ([]models.ModelResponse, error)
	ListByRequest(requestID int64) ([]models.ModelResponse, error)
	CountResponses() (int64, error)

	CreateOffer(offer *models.CustomerOffer) error
	ExistsOffer(postID, customerID int64) (bool, error)
	ListOffersByPost(postID int64) ([]models.CustomerOffer, error)
}

type ResponseRepositoryImpl struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &ResponseRepositoryImpl{db: db}
}

func (r *ResponseRepositoryImpl) CreateResponse(resp *models.ModelResponse) error {
	err := r.db.Create(resp).Error
	if err != nil {
		// уникальный индекс (request_id, model_id)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateResponse
		}
		return err
	}
	return nil
}

func (r *ResponseRepositoryImpl) FindResponseByID(id int64) (*models.ModelResponse, error) {
	var resp models.ModelResponse
	err := r.db.Preload("Request").Preload("Model").First(&resp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *ResponseRepositoryImpl) UpdateResponseStatus(id int64, status models.ResponseStatus) error {
	result := r.db.Model(&models.ModelResponse{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResponseNotFound
	}
	return nil
}

func (r *ResponseRepositoryImpl) CountActiveByRequest(requestID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.ModelResponse{}).
		Where("request_id = ? AND status <> ?", requestID, models.ResponseStatusRejected).
		Count(&count).Error
	return count, err
}

func (r *ResponseRepositoryImpl) ExistsResponse(requestID, modelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ModelResponse{}).
		Where("request_id = ? AND model_id = ?", requestID, modelID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepositoryImpl) ListByModel(modelID int64) ([]models.ModelResponse, error) {
	var resps []models.ModelResponse
	err := r.db.Preload("Request").
		Where("model_id = ?", modelID).
		Order("created_at DESC").
		Find(&resps).Error
	return resps, err
}

func (r *ResponseRepositoryImpl) ListByRequest(requestID int64) ([]models.ModelResponse, error) {
	var resps []models.ModelResponse
	err := r.db.Preload("Model").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&resps).Error
	return resps, err
}

func (r *ResponseRepositoryImpl) CountResponses() (int64, error) {
	var count int64
	err := r.db.Model(&models.ModelResponse{}).Count(&count).Error
	return count, err
}

func (r *ResponseRepositoryImpl) CreateOffer(offer *models.CustomerOffer) error {
	err := r.db.Create(offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOffer
		}
		return err
	}
	return nil
}

func (r *ResponseRepositoryImpl) ExistsOffer(postID, customerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.CustomerOffer{}).
		Where("post_id = ? AND customer_id = ?", postID, customerID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepositoryImpl) ListOffersByPost(postID int64) ([]models.CustomerOffer, error) {
	var offers []models.CustomerOffer
	err := r.db.Preload("Customer").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}
