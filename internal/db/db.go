package db

import (
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/config"
	"github.com/odontosys/clinic-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	pgxCfg, err := pgx.ParseConfig(cfg.DBUrl)
	if err != nil {
		log.Fatalf("invalid DATABASE_URL: %v", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Professional{},
		&models.Service{},
		&models.ProfessionalService{},
		&models.Client{},
		&models.Appointment{},
		&models.Notification{},
		&models.FinancialTransaction{},
		&models.MedicalRecord{},
		&models.Prescription{},
		&models.PrescriptionItem{},
		&models.Diagnosis{},
		&models.Odontogram{},
		&models.OdontogramEntry{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE clinics
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
