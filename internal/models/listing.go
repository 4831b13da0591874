package models

// ServiceRequest - заявка заказчика на поиск моделей.
type ServiceRequest struct {
	BaseModel
	CustomerID int64 `gorm:"not null;index" json:"customer_id"`

	Category    string `gorm:"size:128;not null;index" json:"category"`
	Subcategory string `gorm:"size:128" json:"subcategory"`
	City        string `gorm:"size:128" json:"city"`
	District    string `gorm:"size:128" json:"district"`
	Date        string `gorm:"size:32" json:"date"`
	Time        string `gorm:"size:32" json:"time"`
	Duration    string `gorm:"size:64" json:"duration"`

	Requirements       string `json:"requirements"`
	ModelsNeeded       int    `gorm:"default:1" json:"models_needed"`
	ExperienceRequired string `gorm:"size:255" json:"experience_required"`
	ViewersCount       int    `json:"viewers_count"`
	PhotoVideo         bool   `json:"photo_video"`
	MaterialsPayment   string `gorm:"size:255" json:"materials_payment"`
	ParticipationType  string `gorm:"size:64" json:"participation_type"`

	PaymentAmount *string `gorm:"size:64" json:"payment_amount,omitempty"`
	DressCode     *string `gorm:"size:255" json:"dress_code,omitempty"`
	Comment       *string `json:"comment,omitempty"`

	// MessageID - ссылка на опубликованную копию в канале
	MessageID *int64 `json:"message_id,omitempty"`
	IsClosed  bool   `gorm:"default:false;index" json:"is_closed"`

	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}

// AvailabilityPost - пост модели о свободном времени.
type AvailabilityPost struct {
	BaseModel
	ModelID int64 `gorm:"not null;index" json:"model_id"`

	Date              string `gorm:"size:32" json:"date"`
	District          string `gorm:"size:128" json:"district"`
	Category          string `gorm:"size:128;index" json:"category"`
	Zones             string `gorm:"size:255" json:"zones"`
	TimeRange         string `gorm:"size:64" json:"time_range"`
	PhotoVideo        bool   `json:"photo_video"`
	ParticipationType string `gorm:"size:64" json:"participation_type"`
	Note              *string `json:"note,omitempty"`

	MessageID *int64 `json:"message_id,omitempty"`
	IsClosed  bool   `gorm:"default:false;index" json:"is_closed"`

	Model *User `gorm:"foreignKey:ModelID" json:"model,omitempty"`
}

func (AvailabilityPost) TableName() string {
	return "availability_posts"
}

// RequestField / PostField - закрытые наборы редактируемых полей заявки
// и поста. Правка идет только по перечисленным полям.
type RequestField string
type PostField string

const (
	RequestFieldDate         RequestField = "date"
	RequestFieldTime         RequestField = "time"
	RequestFieldDistrict     RequestField = "district"
	RequestFieldRequirements RequestField = "requirements"
	RequestFieldModelsNeeded RequestField = "models_needed"
	RequestFieldPayment      RequestField = "payment_amount"
	RequestFieldDressCode    RequestField = "dress_code"
	RequestFieldComment      RequestField = "comment"

	PostFieldDate      PostField = "date"
	PostFieldDistrict  PostField = "district"
	PostFieldZones     PostField = "zones"
	PostFieldTimeRange PostField = "time_range"
	PostFieldNote      PostField = "note"
)

func (f RequestField) IsValid() bool {
	switch f {
	case RequestFieldDate, RequestFieldTime, RequestFieldDistrict,
		RequestFieldRequirements, RequestFieldModelsNeeded,
		RequestFieldPayment, RequestFieldDressCode, RequestFieldComment:
		return true
	}
	return false
}

func (f PostField) IsValid() bool {
	switch f {
	case PostFieldDate, PostFieldDistrict, PostFieldZones,
		PostFieldTimeRange, PostFieldNote:
		return true
	}
	return false
}
