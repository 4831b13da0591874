package models

import (
	"time"
)

// BaseModel - общие поля для таблиц с автоинкрементным ключом.
// Пользователи сюда не входят: их ID приходит из мессенджера.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
