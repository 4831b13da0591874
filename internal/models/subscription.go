package models

import "time"

// Subscription - оплаченный (или пробный) доступ к роли.
// Активность всегда проверяется как is_active AND end_date > now,
// одного флага недостаточно: воркер может еще не пройти по записи.
type Subscription struct {
	BaseModel
	UserID    int64     `gorm:"not null;index:idx_sub_user_role" json:"user_id"`
	Role      UserRole  `gorm:"type:varchar(16);not null;index:idx_sub_user_role" json:"role"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	// PaymentID - внешний ID платежа либо сентинел TrialPaymentID
	PaymentID string `gorm:"size:64" json:"payment_id"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsLive - подписка действует в момент now
func (s *Subscription) IsLive(now time.Time) bool {
	return s.IsActive && s.EndDate.After(now)
}

// SubscriptionInfo - сводка для экрана "моя подписка"
type SubscriptionInfo struct {
	HasSubscription bool       `json:"has_subscription"`
	DaysLeft        int        `json:"days_left"`
	EndDate         *time.Time `json:"end_date,omitempty"`
}
