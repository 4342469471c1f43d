package repository

import (
	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"gorm.io/gorm"
)

type childRepository struct {
	db *gorm.DB
}

// NewChildRepository creates a child-profile repository backed by GORM.
func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) Create(child *models.ChildProfile) error {
	return r.db.Create(child).Error
}

func (r *childRepository) GetByID(id uint) (*models.ChildProfile, error) {
	var child models.ChildProfile
	if err := r.db.First(&child, id).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepository) GetByParentID(parentID uint) ([]models.ChildProfile, error) {
	var children []models.ChildProfile
	err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&children).Error
	return children, err
}

func (r *childRepository) CountByParentID(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChildProfile{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *childRepository) Update(child *models.ChildProfile) error {
	return r.db.Save(child).Error
}

func (r *childRepository) Delete(id uint) error {
	return r.db.Delete(&models.ChildProfile{}, id).Error
}
