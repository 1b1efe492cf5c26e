package models

import (
	"time"
)

type Home struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	JoinCode  string    `gorm:"uniqueIndex" json:"join_code"` // six digits, used for invitation
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HomeMembership ties a user to a home for a span of time. A row is never
// hard-deleted: leaving a home sets EndDate instead.
type HomeMembership struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	HomeID    uint       `gorm:"index" json:"home_id"`
	UserID    uint       `gorm:"index" json:"user_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
