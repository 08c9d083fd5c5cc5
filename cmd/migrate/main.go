package main

import (
	"flag"
	"log"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/config"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/migration"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "seed demo users and a sample pipeline")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("[migrate] Schema up to date")

	if *seed {
		if err := seedDemo(db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("[migrate] Demo data seeded")
	}
}

// seedDemo creates a demo partner account and a small pipeline so a
// fresh install has something to look at. Idempotent: skips when any
// user already exists.
func seedDemo(db *gorm.DB) error {
	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count > 0 {
		log.Println("[seed] Users already exist, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		Email:    "admin@example.com",
		Password: string(hash),
		FullName: "Demo Admin",
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	var board domain.Board
	if err := db.Where("is_default = ?", true).First(&board).Error; err != nil {
		return err
	}

	member := domain.Membership{
		BoardID:   board.ID,
		UserID:    admin.ID,
		BoardRole: domain.RoleAdmin,
	}
	if err := db.Create(&member).Error; err != nil {
		return err
	}

	deals := []domain.Deal{
		{BoardID: board.ID, OwnerID: admin.ID, Name: "Acme Robotics", Round: "Seed", Stage: domain.StageSourced, Status: domain.StatusActive},
		{BoardID: board.ID, OwnerID: admin.ID, Name: "Northwind Analytics", Round: "Series A", Stage: domain.StageDiligence, Status: domain.StatusActive},
	}
	return db.Create(&deals).Error
}
