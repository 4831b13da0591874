package models

// ModelResponse - отклик модели на заявку заказчика.
// Уникальный индекс (request_id, model_id) страхует проверку дубликата
// на уровне хранилища.
type ModelResponse struct {
	BaseModel
	RequestID int64          `gorm:"not null;uniqueIndex:idx_response_request_model" json:"request_id"`
	ModelID   int64          `gorm:"not null;uniqueIndex:idx_response_request_model" json:"model_id"`
	Status    ResponseStatus `gorm:"type:varchar(16);default:'pending'" json:"status"`

	Request *ServiceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Model   *User           `gorm:"foreignKey:ModelID" json:"model,omitempty"`
}

func (ModelResponse) TableName() string {
	return "model_responses"
}

// CustomerOffer - обращение заказчика к посту модели. Информационное:
// статус не переводится, решения по офферу нет.
type CustomerOffer struct {
	BaseModel
	PostID     int64          `gorm:"not null;uniqueIndex:idx_offer_post_customer" json:"post_id"`
	CustomerID int64          `gorm:"not null;uniqueIndex:idx_offer_post_customer" json:"customer_id"`
	Status     ResponseStatus `gorm:"type:varchar(16);default:'pending'" json:"status"`

	Post     *AvailabilityPost `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Customer *User             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (CustomerOffer) TableName() string {
	return "customer_offers"
}
