package repository

import (
	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"gorm.io/gorm"
)

type tutorRepository struct {
	db *gorm.DB
}

// NewTutorRepository creates a tutor-profile repository backed by GORM.
func NewTutorRepository(db *gorm.DB) TutorRepository {
	return &tutorRepository{db: db}
}

func (r *tutorRepository) Create(profile *models.TutorProfile) error {
	return r.db.Create(profile).Error
}

func (r *tutorRepository) GetByID(id uint) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tutorRepository) GetByUserID(userID uint) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *tutorRepository) ListListed(offset, limit int) ([]models.TutorProfile, error) {
	var profiles []models.TutorProfile
	err := r.db.Where("is_listed = ?", true).
		Offset(offset).Limit(limit).
		Order("rating_count DESC, created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *tutorRepository) SearchBySubject(subject string, offset, limit int) ([]models.TutorProfile, error) {
	var profiles []models.TutorProfile
	err := r.db.Where("is_listed = ? AND subjects LIKE ?", true, "%"+subject+"%").
		Offset(offset).Limit(limit).
		Order("rating_count DESC, created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *tutorRepository) Update(profile *models.TutorProfile) error {
	return r.db.Save(profile).Error
}
