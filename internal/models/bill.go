package models

import (
	"time"
)

const (
	SplitRuleEqual  = "equal"
	SplitRuleCustom = "custom"

	ShareStatusUnpaid = "unpaid"
	ShareStatusPaid   = "paid"
)

type Bill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HomeID      uint      `gorm:"index" json:"home_id"`
	Description string    `gorm:"not null" json:"description"`
	BillType    string    `json:"bill_type"` // rent, utilities, groceries, other
	TotalAmount float64   `json:"total_amount"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	PayerID     uint      `gorm:"index" json:"payer_user_id"` // the creditor
	SplitRule   string    `json:"split_rule"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BillShare is one participant's portion of a bill. The composite key keeps a
// user to at most one row per bill; shares are replaced wholesale on edit and
// deleted with the bill.
type BillShare struct {
	BillID    uint      `gorm:"primaryKey" json:"bill_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	AmountDue float64   `json:"amount_due"`
	Status    string    `gorm:"default:unpaid" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
