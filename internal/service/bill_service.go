package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"roomshare-go/internal/models"
	"roomshare-go/internal/split"
)

// BillService owns the bill and share workflow: atomic create/update/delete
// of a bill plus its shares, payer-only mutation, and the listings each side
// of a debt needs.
type BillService struct {
	db    *gorm.DB
	homes *HomeService
}

func NewBillService(db *gorm.DB, homes *HomeService) *BillService {
	return &BillService{db: db, homes: homes}
}

// ShareInput is one caller-supplied participant entry. AmountDue is only
// meaningful for custom splits; Status defaults to unpaid.
type ShareInput struct {
	UserID    uint
	AmountDue float64
	Status    string
}

// BillInput carries the writable bill fields for create and update.
type BillInput struct {
	Description string
	BillType    string
	TotalAmount float64
	DueDate     string
	SplitRule   string
	Shares      []ShareInput
}

// OutstandingBill is a bill joined with the viewing user's own share.
type OutstandingBill struct {
	BillID      uint    `json:"bill_id"`
	Description string  `json:"description"`
	BillType    string  `json:"bill_type"`
	TotalAmount float64 `json:"total_amount"`
	DueDate     string  `json:"due_date"`
	PayerID     uint    `json:"payer_user_id"`
	PayerName   string  `json:"payer_name"`
	SplitRule   string  `json:"split_rule"`
	AmountDue   float64 `json:"amount_due"`
	Status      string  `json:"status"`
}

// ShareDetail is a share joined with the participant's display name.
type ShareDetail struct {
	UserID    uint    `json:"user_id"`
	Name      string  `json:"name"`
	AmountDue float64 `json:"amount_due"`
	Status    string  `json:"status"`
}

// PayerInfo is what a participant may see about the member they owe.
type PayerInfo struct {
	UserID        uint   `json:"user_id"`
	Name          string `json:"name"`
	PaymentMethod string `json:"payment_method"`
	PaymentHandle string `json:"payment_handle"`
}

func validateBillInput(in *BillInput) error {
	if in.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", in.DueDate); err != nil {
		return fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrValidation)
	}
	if in.SplitRule != models.SplitRuleEqual && in.SplitRule != models.SplitRuleCustom {
		return fmt.Errorf("%w: split rule must be %q or %q", ErrValidation, models.SplitRuleEqual, models.SplitRuleCustom)
	}
	return nil
}

// buildShares turns caller-supplied participants into the share rows to
// insert. Every participant must be an active member of the home, and an
// equal split may list each member only once. For an
// equal split where all active members participate, the member list from the
// membership table is authoritative: it is re-derived here, ordered by user
// id, so remainder cents land on the same members regardless of the order
// the client sent.
func (s *BillService) buildShares(ctx context.Context, homeID uint, in *BillInput) ([]models.BillShare, error) {
	memberIDs, err := s.homes.ActiveMemberIDs(ctx, homeID)
	if err != nil {
		return nil, err
	}
	memberSet := make(map[uint]bool, len(memberIDs))
	for _, id := range memberIDs {
		memberSet[id] = true
	}
	for _, sh := range in.Shares {
		if !memberSet[sh.UserID] {
			return nil, fmt.Errorf("%w: user %d is not an active member of the home", ErrValidation, sh.UserID)
		}
	}

	if in.SplitRule == models.SplitRuleEqual {
		participants := make([]uint, len(in.Shares))
		seen := make(map[uint]bool, len(in.Shares))
		for i, sh := range in.Shares {
			if seen[sh.UserID] {
				return nil, fmt.Errorf("%w: user %d is listed more than once", ErrValidation, sh.UserID)
			}
			seen[sh.UserID] = true
			participants[i] = sh.UserID
		}
		if len(participants) == len(memberIDs) {
			participants = memberIDs
		}
		computed, err := split.EqualSplit(in.TotalAmount, participants)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		shares := make([]models.BillShare, len(computed))
		for i, c := range computed {
			shares[i] = models.BillShare{UserID: c.UserID, AmountDue: c.Amount, Status: models.ShareStatusUnpaid}
		}
		return shares, nil
	}

	custom := make([]split.Share, len(in.Shares))
	for i, sh := range in.Shares {
		custom[i] = split.Share{UserID: sh.UserID, Amount: sh.AmountDue}
	}
	if err := split.ValidateCustomSplit(in.TotalAmount, custom); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	shares := make([]models.BillShare, len(in.Shares))
	for i, sh := range in.Shares {
		status := sh.Status
		if status == "" {
			status = models.ShareStatusUnpaid
		}
		if status != models.ShareStatusUnpaid && status != models.ShareStatusPaid {
			return nil, fmt.Errorf("%w: share status must be %q or %q", ErrValidation, models.ShareStatusPaid, models.ShareStatusUnpaid)
		}
		shares[i] = models.BillShare{UserID: sh.UserID, AmountDue: sh.AmountDue, Status: status}
	}
	return shares, nil
}

// Create writes a bill and its shares in one transaction. The creator
// becomes the payer. Returns the new bill id.
func (s *BillService) Create(ctx context.Context, creatorID uint, in BillInput) (uint, error) {
	if err := validateBillInput(&in); err != nil {
		return 0, err
	}
	if len(in.Shares) == 0 {
		return 0, fmt.Errorf("%w: at least one participant is required", ErrValidation)
	}

	home, err := s.homes.HomeForUser(ctx, creatorID)
	if err != nil {
		return 0, err
	}

	shares, err := s.buildShares(ctx, home.ID, &in)
	if err != nil {
		return 0, err
	}

	bill := &models.Bill{
		HomeID:      home.ID,
		Description: in.Description,
		BillType:    in.BillType,
		TotalAmount: in.TotalAmount,
		DueDate:     in.DueDate,
		PayerID:     creatorID,
		SplitRule:   in.SplitRule,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}
		for i := range shares {
			shares[i].BillID = bill.ID
			if err := tx.Create(&shares[i]).Error; err != nil {
				return fmt.Errorf("failed to insert share for user %d: %w", shares[i].UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bill.ID, nil
}

func (s *BillService) getBill(ctx context.Context, billID uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).First(&bill, billID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: bill %d", ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bill: %w", err)
	}
	return &bill, nil
}

// Update rewrites the bill's scalar fields and, when shares are supplied,
// replaces the full share set using the same split selection as Create.
// Only the payer may update a bill.
func (s *BillService) Update(ctx context.Context, requesterID, billID uint, in BillInput) error {
	bill, err := s.getBill(ctx, billID)
	if err != nil {
		return err
	}
	if bill.PayerID != requesterID {
		return fmt.Errorf("%w: only the payer may update a bill", ErrForbidden)
	}
	if err := validateBillInput(&in); err != nil {
		return err
	}

	var shares []models.BillShare
	if len(in.Shares) > 0 {
		shares, err = s.buildShares(ctx, bill.HomeID, &in)
		if err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"description":  in.Description,
			"bill_type":    in.BillType,
			"total_amount": in.TotalAmount,
			"due_date":     in.DueDate,
			"split_rule":   in.SplitRule,
		}
		if err := tx.Model(&models.Bill{}).Where("id = ?", billID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		if len(shares) == 0 {
			return nil
		}
		if err := tx.Where("bill_id = ?", billID).Delete(&models.BillShare{}).Error; err != nil {
			return fmt.Errorf("failed to clear old shares: %w", err)
		}
		for i := range shares {
			shares[i].BillID = billID
			if err := tx.Create(&shares[i]).Error; err != nil {
				return fmt.Errorf("failed to insert share for user %d: %w", shares[i].UserID, err)
			}
		}
		return nil
	})
}

// Delete removes a bill and its shares. Only the payer may delete. Shares go
// first; the foreign key points at the bill.
func (s *BillService) Delete(ctx context.Context, requesterID, billID uint) error {
	bill, err := s.getBill(ctx, billID)
	if err != nil {
		return err
	}
	if bill.PayerID != requesterID {
		return fmt.Errorf("%w: only the payer may delete a bill", ErrForbidden)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", billID).Delete(&models.BillShare{}).Error; err != nil {
			return fmt.Errorf("failed to delete shares: %w", err)
		}
		if err := tx.Delete(&models.Bill{}, billID).Error; err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return nil
	})
}

// ListOutstandingForUser returns bills where the user holds a share, with
// that share's amount and status. filter "outstanding" hides paid shares;
// "all" includes them. Most recent due date first.
func (s *BillService) ListOutstandingForUser(ctx context.Context, userID uint, filter string) ([]OutstandingBill, error) {
	if filter != "outstanding" && filter != "all" {
		return nil, fmt.Errorf("%w: filter must be \"outstanding\" or \"all\"", ErrValidation)
	}

	q := s.db.WithContext(ctx).Table("bills").
		Select("bills.id AS bill_id, bills.description, bills.bill_type, bills.total_amount, bills.due_date, bills.payer_id, users.name AS payer_name, bills.split_rule, bill_shares.amount_due, bill_shares.status").
		Joins("JOIN bill_shares ON bill_shares.bill_id = bills.id").
		Joins("JOIN users ON users.id = bills.payer_id").
		Where("bill_shares.user_id = ?", userID)
	if filter == "outstanding" {
		q = q.Where("bill_shares.status = ?", models.ShareStatusUnpaid)
	}

	var rows []OutstandingBill
	if err := q.Order("bills.due_date DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list outstanding bills: %w", err)
	}
	return rows, nil
}

// ListCreatedByUser returns the bills the user is owed on, most recent due
// date first.
func (s *BillService) ListCreatedByUser(ctx context.Context, userID uint) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.WithContext(ctx).
		Where("payer_id = ?", userID).
		Order("due_date DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list created bills: %w", err)
	}
	return bills, nil
}

// ListShares returns every share on a bill with the participant's name,
// ordered by name. Only the payer may see who owes what.
func (s *BillService) ListShares(ctx context.Context, requesterID, billID uint) ([]ShareDetail, error) {
	bill, err := s.getBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.PayerID != requesterID {
		return nil, fmt.Errorf("%w: only the payer may list shares", ErrForbidden)
	}

	var rows []ShareDetail
	err = s.db.WithContext(ctx).Table("bill_shares").
		Select("bill_shares.user_id, users.name, bill_shares.amount_due, bill_shares.status").
		Joins("JOIN users ON users.id = bill_shares.user_id").
		Where("bill_shares.bill_id = ?", billID).
		Order("users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return rows, nil
}

// UpdateShareStatus flips the caller's own share on a bill between paid and
// unpaid. A user can never touch another member's share.
func (s *BillService) UpdateShareStatus(ctx context.Context, userID, billID uint, status string) error {
	if status != models.ShareStatusPaid && status != models.ShareStatusUnpaid {
		return fmt.Errorf("%w: status must be %q or %q", ErrValidation, models.ShareStatusPaid, models.ShareStatusUnpaid)
	}

	var share models.BillShare
	err := s.db.WithContext(ctx).
		Where("bill_id = ? AND user_id = ?", billID, userID).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: no share for user %d on bill %d", ErrNotFound, userID, billID)
	}
	if err != nil {
		return fmt.Errorf("failed to load share: %w", err)
	}

	err = s.db.WithContext(ctx).Model(&models.BillShare{}).
		Where("bill_id = ? AND user_id = ?", billID, userID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update share status: %w", err)
	}
	return nil
}

// GetPayerInfo returns the payer's name and payment contact for a bill.
// Only participants holding a share may look it up.
func (s *BillService) GetPayerInfo(ctx context.Context, requesterID, billID uint) (*PayerInfo, error) {
	bill, err := s.getBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	var share models.BillShare
	err = s.db.WithContext(ctx).
		Where("bill_id = ? AND user_id = ?", billID, requesterID).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: only participants may view payer info", ErrForbidden)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load share: %w", err)
	}

	var payer models.User
	if err := s.db.WithContext(ctx).First(&payer, bill.PayerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load payer: %w", err)
	}

	return &PayerInfo{
		UserID:        payer.ID,
		Name:          payer.Name,
		PaymentMethod: payer.PaymentMethod,
		PaymentHandle: payer.PaymentHandle,
	}, nil
}
