package model

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is a named feature bundle belonging to exactly one service.
// Features are opaque JSON; the system stores and returns them untouched.
type Plan struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ServiceID uint           `json:"service_id" gorm:"not null;index"`
	PlanName  string         `json:"plan_name" gorm:"size:255;not null"`
	Features  datatypes.JSON `json:"features" gorm:"type:json"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Relations
	Service Service `json:"-" gorm:"foreignKey:ServiceID"`
}
