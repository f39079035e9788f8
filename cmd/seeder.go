package cmd

import (
	"fmt"
	"log"
	"time"

	lotoDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/loto"
	settingsDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/settings"
	toolDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/tool"
	userDatamodel "github.com/ronaldsalazarvasquez/Inventario-Taller/internal/core/datamodel/user"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/settings"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		seedUsers(db, cfg.Security.BCryptCost)
		seedTools(db)
		seedLockoutDevices(db)
		seedSettings(db)

		fmt.Println("Seeding complete")
	},
}

func clearTables(db *gorm.DB) {
	tables := []string{
		"notifications", "lockout_usage_records", "lockout_devices",
		"decommission_records", "maintenance_records", "loan_records",
		"tools", "users", "app_settings",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	now := time.Now()
	users := []userDatamodel.User{
		{ID: "EMP-001", Name: "Carlos Mendoza", Role: "administrator", AccessZones: "*"},
		{ID: "EMP-002", Name: "Lucía Paredes", Role: "supervisor", AccessZones: "*"},
		{ID: "EMP-003", Name: "Jorge Quispe", Role: "mechanic_technician", AccessZones: "taller,almacen"},
		{ID: "EMP-004", Name: "Ana Torres", Role: "electric_technician", AccessZones: "taller,tableros"},
		{ID: "EMP-005", Name: "Miguel Rojas", Role: "operator", AccessZones: "taller"},
	}

	for i := range users {
		users[i].PasswordHash = string(hash)
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	fmt.Printf("Seeded %d users\n", len(users))
}

func seedTools(db *gorm.DB) {
	now := time.Now()
	lastCal := now.AddDate(0, -6, 0)
	nextCal := now.AddDate(0, 6, 0)
	certType := "ISO 17025"
	certRef := "CERT-2025-114"

	tools := []toolDatamodel.Tool{
		{
			ID: "HER-001", Name: "Taladro Bosch GSB 13 RE", Category: "electric",
			Brand: "Bosch", Status: "available", Location: "Estante A-1",
			AcquisitionDate: now.AddDate(-2, 0, 0), LifespanMonths: 60,
		},
		{
			ID: "HER-002", Name: "Amoladora DeWalt DWE4120", Category: "electric",
			Brand: "DeWalt", Status: "available", Location: "Estante A-2",
			AcquisitionDate: now.AddDate(-1, -3, 0), LifespanMonths: 48,
		},
		{
			ID: "HER-003", Name: "Llave de torque Stanley", Category: "mechanic",
			Brand: "Stanley", Status: "available", Location: "Cajón B-1",
			AcquisitionDate: now.AddDate(-3, 0, 0), LifespanMonths: 120,
		},
		{
			ID: "HER-004", Name: "Multímetro Fluke 117", Category: "electric",
			Brand: "Fluke", Status: "available", Location: "Gabinete C-1",
			AcquisitionDate:       now.AddDate(-1, 0, 0),
			LifespanMonths:        96,
			IsMeasuringInstrument: true, HasCertification: true,
			LastCalibrationDate: &lastCal, NextCalibrationDate: &nextCal,
			CertificateType: &certType, CertificateRef: &certRef,
		},
	}

	for i := range tools {
		tools[i].CreatedAt = now
		tools[i].UpdatedAt = now
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tools).Error; err != nil {
		log.Fatalf("failed to seed tools: %v", err)
	}
	fmt.Printf("Seeded %d tools\n", len(tools))
}

func seedLockoutDevices(db *gorm.DB) {
	now := time.Now()
	devices := []lotoDatamodel.LockoutDevice{
		{
			ID: "LOTO-E-001", Name: "Candado de bloqueo eléctrico", Type: "electric",
			Brand: "Brady", Color: "rojo", Status: "available", Location: "Tablero principal",
			AcquisitionDate: now.AddDate(-1, 0, 0),
		},
		{
			ID: "LOTO-E-002", Name: "Bloqueador de interruptor", Type: "electric",
			Brand: "Master Lock", Color: "amarillo", Status: "available", Location: "Tablero secundario",
			AcquisitionDate: now.AddDate(0, -8, 0),
		},
		{
			ID: "LOTO-M-001", Name: "Bloqueador de válvula de bola", Type: "mechanical",
			Brand: "Brady", Color: "azul", Status: "available", Location: "Sala de bombas",
			AcquisitionDate: now.AddDate(0, -10, 0),
		},
	}

	for i := range devices {
		devices[i].CreatedAt = now
		devices[i].UpdatedAt = now
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&devices).Error; err != nil {
		log.Fatalf("failed to seed lockout devices: %v", err)
	}
	fmt.Printf("Seeded %d lockout devices\n", len(devices))
}

func seedSettings(db *gorm.DB) {
	row := settingsDatamodel.Settings{
		ID:                     1,
		CalibrationWarningDays: settings.DefaultCalibrationWarningDays,
		UpdatedAt:              time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}
	fmt.Println("Seeded default settings")
}
