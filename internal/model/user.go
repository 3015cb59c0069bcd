package model

import "time"

// Role values assignable to a User.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents an account holder. Self-service signups always get the
// customer role; admins are provisioned out of band (see cmd/seed).
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'customer';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
