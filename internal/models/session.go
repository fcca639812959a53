package models

import "time"

type Session struct {
	ID         string    `gorm:"primaryKey"`
	Token      string    `gorm:"not null"`
	UserJSON   string    `gorm:"column:user_json;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeenAt time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}
