package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-backend/models"
	"clinic-backend/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "clinic_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// Migrate applies the schema for every entity. Split out so tests can run
// it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.StaffAccount{},
		&models.StaffMember{},
		&models.Appointment{},
		&models.DataSubjectRightsRequest{},
		&models.BlogCategory{},
		&models.BlogPost{},
		&models.CookieConsent{},
	)
}

// SeedDatabase creates the default console account and starter blog
// categories when the tables are empty.
func SeedDatabase(db *gorm.DB) {
	var accountCount int64
	db.Model(&models.StaffAccount{}).Count(&accountCount)
	if accountCount == 0 {
		password := utils.EnvOrDefault("SEED_ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default account password: %v", err)
		} else {
			account := models.StaffAccount{
				FullName: "Site Administrator",
				Username: utils.EnvOrDefault("SEED_ADMIN_USERNAME", "admin@clinic.local"),
				Password: string(hash),
			}
			if err := db.Create(&account).Error; err != nil {
				log.Printf("warning: failed to create default account: %v", err)
			} else {
				log.Println("Default staff account seeded")
			}
		}
	}

	var categoryCount int64
	db.Model(&models.BlogCategory{}).Count(&categoryCount)
	if categoryCount == 0 {
		categories := []models.BlogCategory{
			{Name: "Therapy", Description: "Approaches and methods of psychotherapy"},
			{Name: "Mental Health", Description: "Everyday mental wellbeing"},
			{Name: "Parenting", Description: "Raising and supporting children"},
		}
		if err := db.Create(&categories).Error; err != nil {
			log.Printf("warning: failed to seed blog categories: %v", err)
		} else {
			log.Println("Blog categories seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}
