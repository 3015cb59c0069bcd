package model

import "time"

// Service is a subscribable offering in the catalog.
type Service struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ServiceName string    `json:"service_name" gorm:"size:255;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Plans []Plan `json:"plans,omitempty" gorm:"foreignKey:ServiceID"`
}
