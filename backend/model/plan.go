package model

import (
	"errors"
)

// Plan is a named quota policy. A plan referenced by existing files is
// treated as immutable: file expirations are computed once at reservation
// time and never revisited when a plan changes.
type Plan struct {
	Id             int64  `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	MaxFileSize    int64  `json:"max_file_size" gorm:"not null"`
	RetentionHours int    `json:"retention_hours" gorm:"not null"`
	PriceCents     int64  `json:"price_cents" gorm:"default:0"`
	CreatedAt      int64  `json:"created_at" gorm:"autoCreateTime"`
}

func GetPlanById(id int64) (*Plan, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var plan Plan
	if err := DB.First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func GetPlanByName(name string) (*Plan, error) {
	var plan Plan
	if err := DB.Where("name = ?", name).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func GetAllPlans() ([]*Plan, error) {
	var plans []*Plan
	err := DB.Order("price_cents asc").Find(&plans).Error
	return plans, err
}

func (plan *Plan) Insert() error {
	return DB.Create(plan).Error
}
