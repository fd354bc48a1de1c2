package models

import (
	"time"

	"gorm.io/gorm"
)

type APIKey struct {
	gorm.Model
	ProfileID  string     `json:"profile_id" gorm:"index"`
	KeyHash    string     `json:"-" gorm:"uniqueIndex"`
	Hint       string     `json:"hint"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
