package model

import (
	"time"

	"gorm.io/datatypes"
)

// Archive is an append-only historical record of an enrollment. The customer
// name is denormalized so the row survives deletion of the user.
type Archive struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CustomerID   uint           `json:"customer_id" gorm:"not null;index"`
	CustomerName string         `json:"customer_name" gorm:"size:255"`
	ServiceID    uint           `json:"service_id" gorm:"not null;index"`
	PlanName     string         `json:"plan_name" gorm:"size:255;not null"`
	Features     datatypes.JSON `json:"features" gorm:"type:json"`
	CreatedAt    time.Time      `json:"created_at"`
}
