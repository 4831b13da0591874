package models

import (
	"time"

	"gorm.io/datatypes"
)

// User - участник площадки. Первичный ключ = ID чата в мессенджере,
// поэтому autoIncrement выключен.
type User struct {
	ID       int64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username string   `gorm:"size:255" json:"username"`
	Role     UserRole `gorm:"type:varchar(16);default:'viewer';index" json:"role"`

	// Общие поля анкеты
	FullName string `gorm:"size:255" json:"full_name"`
	City     string `gorm:"size:128" json:"city"`
	District string `gorm:"size:128" json:"district"`
	Phone1   string `gorm:"size:32" json:"phone1"`
	Phone2   string `gorm:"size:32" json:"phone2"`

	// Анкета заказчика (мастера)
	ActivityType string `gorm:"size:255" json:"activity_type"`
	Address      string `gorm:"size:255" json:"address"`
	PhotoID      string `gorm:"size:255" json:"photo_id"`

	// Анкета модели
	Age               int            `json:"age"`
	Height            int            `json:"height"`
	SkinType          string         `gorm:"size:128" json:"skin_type"`
	Contraindications string         `json:"contraindications"`
	AvailableDays     string         `gorm:"size:255" json:"available_days"`
	Experience        string         `json:"experience"`
	PhotoVideoAgree   bool           `json:"photo_video_agree"`
	PortfolioIDs      datatypes.JSON `json:"portfolio_ids"`

	IsPrivileged bool    `gorm:"default:false" json:"is_privileged"`
	Rating       float64 `gorm:"default:0" json:"rating"`
	IsBlocked    bool    `gorm:"default:false" json:"is_blocked"`
	GDPRConsent  bool    `gorm:"default:false" json:"gdpr_consent"`

	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ProfileFields - редактируемая часть анкеты. Используется при
// завершении регистрации и при очистке анкеты после смены роли.
type ProfileFields struct {
	FullName          string         `json:"full_name"`
	City              string         `json:"city"`
	District          string         `json:"district"`
	Phone1            string         `json:"phone1"`
	Phone2            string         `json:"phone2"`
	ActivityType      string         `json:"activity_type"`
	Address           string         `json:"address"`
	PhotoID           string         `json:"photo_id"`
	Age               int            `json:"age"`
	Height            int            `json:"height"`
	SkinType          string         `json:"skin_type"`
	Contraindications string         `json:"contraindications"`
	AvailableDays     string         `json:"available_days"`
	Experience        string         `json:"experience"`
	PhotoVideoAgree   bool           `json:"photo_video_agree"`
	PortfolioIDs      datatypes.JSON `json:"portfolio_ids"`
}

// ApplyProfile переносит поля анкеты в пользователя
func (u *User) ApplyProfile(p ProfileFields) {
	u.FullName = p.FullName
	u.City = p.City
	u.District = p.District
	u.Phone1 = p.Phone1
	u.Phone2 = p.Phone2
	u.ActivityType = p.ActivityType
	u.Address = p.Address
	u.PhotoID = p.PhotoID
	u.Age = p.Age
	u.Height = p.Height
	u.SkinType = p.SkinType
	u.Contraindications = p.Contraindications
	u.AvailableDays = p.AvailableDays
	u.Experience = p.Experience
	u.PhotoVideoAgree = p.PhotoVideoAgree
	u.PortfolioIDs = p.PortfolioIDs
}
