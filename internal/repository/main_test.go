package repository

import (
	"testing"

	"skillswap/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SwapRequest{},
		&models.Feedback{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, status models.ProfileStatus) *models.User {
	t.Helper()
	user := &models.User{
		Name:          name,
		Email:         name + "@example.com",
		Password:      "hash",
		ProfileStatus: status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func seedSwap(t *testing.T, db *gorm.DB, requesterID, responderID uint, status models.SwapStatus) *models.SwapRequest {
	t.Helper()
	swap := &models.SwapRequest{
		RequesterID:  requesterID,
		ResponderID:  responderID,
		OfferedSkill: "React",
		WantedSkill:  "Pottery",
		Message:      "placeholder message long enough",
		Status:       status,
	}
	if err := db.Create(swap).Error; err != nil {
		t.Fatalf("seed swap: %v", err)
	}
	return swap
}
