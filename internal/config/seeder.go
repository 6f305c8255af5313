package config

import (
	"log"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	if err := seedDepartments(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedDepartments(db *gorm.DB) error {
	departments := []models.Department{
		{Code: "CSE", Name: "Computer Science & Engineering"},
		{Code: "ECE", Name: "Electronics & Communication Engineering"},
		{Code: "ME", Name: "Mechanical Engineering"},
		{Code: "CE", Name: "Civil Engineering"},
		{Code: "EE", Name: "Electrical Engineering"},
		{Code: "MATH", Name: "Mathematics"},
		{Code: "PHY", Name: "Physics"},
	}

	for _, dept := range departments {
		var existing models.Department
		if err := db.Where("code = ?", dept.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&dept).Error; err != nil {
					return err
				}
				log.Printf("   Created department: %s", dept.Name)
			}
		}
	}
	return nil
}
