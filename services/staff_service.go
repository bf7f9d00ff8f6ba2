package services

import (
	"gorm.io/gorm"

	"clinic-backend/models"
)

// StaffService manages team profiles shown on the about page.
type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

// ListActive returns the profiles shown publicly, in display order.
func (s *StaffService) ListActive() ([]models.StaffMember, error) {
	var members []models.StaffMember
	err := s.DB.
		Where("is_active = ?", true).
		Order("display_order ASC, last_name ASC").
		Find(&members).Error
	return members, err
}

// ListAll returns every profile for the console, inactive included.
func (s *StaffService) ListAll() ([]models.StaffMember, error) {
	var members []models.StaffMember
	err := s.DB.Order("display_order ASC, last_name ASC").Find(&members).Error
	return members, err
}

func (s *StaffService) GetByID(id uint) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := s.DB.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *StaffService) Create(member *models.StaffMember) error {
	return s.DB.Create(member).Error
}

func (s *StaffService) Save(member *models.StaffMember) error {
	return s.DB.Save(member).Error
}

func (s *StaffService) Delete(id uint) error {
	return s.DB.Delete(&models.StaffMember{}, id).Error
}
