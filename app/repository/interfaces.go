package repository

import (
	"github.com/poiuyt183/efunny-learn-sub001/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ChildRepository defines the interface for child-profile operations
type ChildRepository interface {
	Create(child *models.ChildProfile) error
	GetByID(id uint) (*models.ChildProfile, error)
	GetByParentID(parentID uint) ([]models.ChildProfile, error)
	CountByParentID(parentID uint) (int64, error)
	Update(child *models.ChildProfile) error
	Delete(id uint) error
}

// TutorRepository defines the interface for tutor-profile operations
type TutorRepository interface {
	Create(profile *models.TutorProfile) error
	GetByID(id uint) (*models.TutorProfile, error)
	GetByUserID(userID uint) (*models.TutorProfile, error)
	ListListed(offset, limit int) ([]models.TutorProfile, error)
	SearchBySubject(subject string, offset, limit int) ([]models.TutorProfile, error)
	Update(profile *models.TutorProfile) error
}

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	CreateBatch(bookings []models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetByBatchID(batchID string) ([]models.Booking, error)
	GetByParentID(parentID uint, offset, limit int) ([]models.Booking, error)
	GetByTutorID(tutorID uint, offset, limit int) ([]models.Booking, error)
	CountConfirmedByParentSince(parentID uint, sinceDays int) (int64, error)
	CancelBatch(batchID string, parentID uint) (int64, error)
}
