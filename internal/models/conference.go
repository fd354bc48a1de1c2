package models

import (
	"time"

	"gorm.io/datatypes"
)

// Conference is a child of the organizer's Profile.
type Conference struct {
	ProfileID       string `gorm:"primaryKey"`
	ID              int64  `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string
	Description     string
	Topics          datatypes.JSONSlice[string]
	City            string
	StartDate       *datatypes.Date
	EndDate         *datatypes.Date
	Month           int
	MaxAttendees    int
	SeatsAvailable  int
	OrganizerUserID string
}
