package models

// IDAllocation tracks the last id handed out for a kind of child entity
// under one Profile.
type IDAllocation struct {
	ProfileID string `gorm:"primaryKey"`
	Kind      string `gorm:"primaryKey"`
	Last      int64
}
