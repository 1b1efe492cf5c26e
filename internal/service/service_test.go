package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roomshare-go/internal/models"
)

// setupTestDB opens a throwaway sqlite database and migrates the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "roomshare-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Home{},
		&models.HomeMembership{},
		&models.Bill{},
		&models.BillShare{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		UUID:  fmt.Sprintf("test-%s", name),
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", name),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func createHomeWithMembers(t *testing.T, db *gorm.DB, users ...*models.User) *models.Home {
	t.Helper()
	home := &models.Home{Name: "Test Home", JoinCode: fmt.Sprintf("%06d", time.Now().UnixNano()%900000+100000)}
	if err := db.Create(home).Error; err != nil {
		t.Fatalf("failed to create home: %v", err)
	}
	for _, u := range users {
		m := &models.HomeMembership{HomeID: home.ID, UserID: u.ID, StartDate: time.Now().AddDate(0, -1, 0)}
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("failed to create membership: %v", err)
		}
	}
	return home
}

func endMembership(t *testing.T, db *gorm.DB, homeID, userID uint, when time.Time) {
	t.Helper()
	err := db.Model(&models.HomeMembership{}).
		Where("home_id = ? AND user_id = ?", homeID, userID).
		Update("end_date", when).Error
	if err != nil {
		t.Fatalf("failed to end membership: %v", err)
	}
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

func billShares(t *testing.T, db *gorm.DB, billID uint) []models.BillShare {
	t.Helper()
	var shares []models.BillShare
	if err := db.Where("bill_id = ?", billID).Order("user_id ASC").Find(&shares).Error; err != nil {
		t.Fatalf("failed to load shares: %v", err)
	}
	return shares
}
