package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"roomshare-go/internal/models"
)

// HomeService resolves household membership and manages the home lifecycle
// (create, join by code, leave). Membership lookups always hit the database;
// nothing is cached across requests.
type HomeService struct {
	db *gorm.DB
}

func NewHomeService(db *gorm.DB) *HomeService {
	return &HomeService{db: db}
}

// startOfToday returns midnight of the current day. A membership is active
// when its end date is unset or falls on or after today, so a member who
// leaves stays active through the end of the day.
func startOfToday() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// HomeForUser returns the home the user actively belongs to.
// Returns ErrNotInHome if there is no active membership.
func (s *HomeService) HomeForUser(ctx context.Context, userID uint) (*models.Home, error) {
	var membership models.HomeMembership
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND (end_date IS NULL OR end_date >= ?)", userID, startOfToday()).
		Order("start_date DESC").
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotInHome
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	var home models.Home
	if err := s.db.WithContext(ctx).First(&home, membership.HomeID).Error; err != nil {
		return nil, fmt.Errorf("failed to load home %d: %w", membership.HomeID, err)
	}
	return &home, nil
}

// CountActiveMembers returns the number of currently active members of a home.
func (s *HomeService) CountActiveMembers(ctx context.Context, homeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.HomeMembership{}).
		Where("home_id = ? AND (end_date IS NULL OR end_date >= ?)", homeID, startOfToday()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// ActiveMemberIDs returns the user ids of the home's active members, ordered
// by user id so callers get a stable order.
func (s *HomeService) ActiveMemberIDs(ctx context.Context, homeID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.HomeMembership{}).
		Where("home_id = ? AND (end_date IS NULL OR end_date >= ?)", homeID, startOfToday()).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids: %w", err)
	}
	return ids, nil
}

// ListMembers returns the active members of a home ordered by name.
func (s *HomeService) ListMembers(ctx context.Context, homeID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN home_memberships ON home_memberships.user_id = users.id").
		Where("home_memberships.home_id = ? AND (home_memberships.end_date IS NULL OR home_memberships.end_date >= ?)", homeID, startOfToday()).
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}

// CreateHome creates a home with a fresh join code and opens a membership
// for the creator. Fails if the user already belongs to a home.
func (s *HomeService) CreateHome(ctx context.Context, userID uint, name, address string) (*models.Home, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: home name is required", ErrValidation)
	}
	if _, err := s.HomeForUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: user already belongs to a home", ErrValidation)
	} else if !errors.Is(err, ErrNotInHome) {
		return nil, err
	}

	home := &models.Home{Name: name, Address: address}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := s.uniqueJoinCode(tx)
		if err != nil {
			return err
		}
		home.JoinCode = code
		if err := tx.Create(home).Error; err != nil {
			return fmt.Errorf("failed to create home: %w", err)
		}
		membership := &models.HomeMembership{
			HomeID:    home.ID,
			UserID:    userID,
			StartDate: time.Now(),
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return home, nil
}

// JoinHome opens a membership for the user in the home identified by the
// six-digit join code.
func (s *HomeService) JoinHome(ctx context.Context, userID uint, code string) (*models.Home, error) {
	if len(code) != joinCodeLength {
		return nil, fmt.Errorf("%w: join code must be %d digits", ErrValidation, joinCodeLength)
	}
	if _, err := s.HomeForUser(ctx, userID); err == nil {
		return nil, fmt.Errorf("%w: user already belongs to a home", ErrValidation)
	} else if !errors.Is(err, ErrNotInHome) {
		return nil, err
	}

	var home models.Home
	err := s.db.WithContext(ctx).Where("join_code = ?", code).First(&home).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no home with that join code", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up home: %w", err)
	}

	membership := &models.HomeMembership{
		HomeID:    home.ID,
		UserID:    userID,
		StartDate: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return &home, nil
}

// LeaveHome end-dates the user's active membership. The row is kept for
// history; it is never hard-deleted.
func (s *HomeService) LeaveHome(ctx context.Context, userID uint) error {
	var membership models.HomeMembership
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND (end_date IS NULL OR end_date >= ?)", userID, startOfToday()).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotInHome
	}
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&membership).Update("end_date", now).Error; err != nil {
		return fmt.Errorf("failed to end membership: %w", err)
	}
	return nil
}

const joinCodeLength = 6

// uniqueJoinCode draws random six-digit codes until one is free.
func (s *HomeService) uniqueJoinCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}
		code := fmt.Sprintf("%06d", n.Int64()+100000)

		var count int64
		if err := tx.Model(&models.Home{}).Where("join_code = ?", code).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free join code")
}
