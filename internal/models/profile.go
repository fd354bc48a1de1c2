package models

import (
	"time"

	"gorm.io/datatypes"
)

type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

// TeeShirtSizes lists every size in declaration order.
var TeeShirtSizes = []TeeShirtSize{
	TeeShirtNotSpecified,
	TeeShirtXSM, TeeShirtXSW,
	TeeShirtSM, TeeShirtSW,
	TeeShirtMM, TeeShirtMW,
	TeeShirtLM, TeeShirtLW,
	TeeShirtXLM, TeeShirtXLW,
	TeeShirtXXLM, TeeShirtXXLW,
	TeeShirtXXXLM, TeeShirtXXXLW,
}

// Profile is keyed by the stable user id resolved by the identity provider.
type Profile struct {
	ID                     string `gorm:"primaryKey"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DisplayName            string
	MainEmail              string
	TeeShirtSize           TeeShirtSize `gorm:"default:NOT_SPECIFIED"`
	ConferenceKeysToAttend datatypes.JSONSlice[string]
}
