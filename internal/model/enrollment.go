package model

import (
	"time"

	"gorm.io/datatypes"
)

// Enrollment is an active customer-service-plan association. Features are a
// snapshot of the plan taken at enrollment time, not a live reference:
// editing the plan later must not change rows already written here.
type Enrollment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CustomerID uint           `json:"customer_id" gorm:"not null;index"`
	ServiceID  uint           `json:"service_id" gorm:"not null;index"`
	PlanName   string         `json:"plan_name" gorm:"size:255;not null"`
	Features   datatypes.JSON `json:"features" gorm:"type:json"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Service Service `json:"-" gorm:"foreignKey:ServiceID"`
}

// TableName keeps the table the original schema used.
func (Enrollment) TableName() string {
	return "customer_services"
}
