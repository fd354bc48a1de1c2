package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reservation is a child of the owning Profile. Windows of one owner never
// overlap.
type Reservation struct {
	ProfileID       string `gorm:"primaryKey"`
	ID              int64  `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string
	StartDate       *datatypes.Date `gorm:"index"`
	EndDate         *datatypes.Date
	Month           int
	OrganizerUserID string
}
