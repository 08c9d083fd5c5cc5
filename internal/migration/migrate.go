package migration

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every table and seeds the default board
// if none exists yet.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Board{},
		&domain.Membership{},
		&domain.Deal{},
		&domain.ActivityRecord{},
		&domain.MemoVersion{},
		&domain.Comment{},
		&domain.Vote{},
		&middleware.AuditLog{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.Board{}).Count(&count)
	if count == 0 {
		return seedDefaultBoard(db)
	}

	return nil
}

// seedDefaultBoard creates the board every new signup joins
func seedDefaultBoard(db *gorm.DB) error {
	board := domain.Board{
		Name:        "Main Board",
		Description: "Default pipeline board",
		IsDefault:   true,
	}
	return db.Create(&board).Error
}
