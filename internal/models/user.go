package models

import (
	"time"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"uniqueIndex" json:"uuid"` // Public ID for API tokens
	Name          string    `json:"name"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string    `json:"-"` // Bcrypt hash, hidden from JSON
	PaymentMethod string    `json:"payment_method"` // venmo, paypal, zelle, bank, other
	PaymentHandle string    `json:"payment_handle"` // handle or account hint for the method
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
