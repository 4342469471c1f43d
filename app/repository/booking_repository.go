package repository

import (
	"time"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a booking repository backed by GORM.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) CreateBatch(bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return r.db.Create(&bookings).Error
}

func (r *bookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetByBatchID(batchID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("batch_id = ?", batchID).Order("starts_at ASC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByParentID(parentID uint, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("parent_id = ?", parentID).
		Offset(offset).Limit(limit).
		Order("starts_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) GetByTutorID(tutorID uint, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("tutor_id = ?", tutorID).
		Offset(offset).Limit(limit).
		Order("starts_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) CountConfirmedByParentSince(parentID uint, sinceDays int) (int64, error) {
	var count int64
	since := time.Now().AddDate(0, 0, -sinceDays)
	err := r.db.Model(&models.Booking{}).
		Where("parent_id = ? AND status = ? AND created_at >= ?", parentID, models.BookingStatusConfirmed, since).
		Count(&count).Error
	return count, err
}

// CancelBatch cancels every still-pending booking in a batch owned by the
// parent. Confirmed sessions are untouched.
func (r *bookingRepository) CancelBatch(batchID string, parentID uint) (int64, error) {
	tx := r.db.Model(&models.Booking{}).
		Where("batch_id = ? AND parent_id = ? AND status = ?", batchID, parentID, models.BookingStatusPending).
		Update("status", models.BookingStatusCancelled)
	return tx.RowsAffected, tx.Error
}
