package payment

import (
	"context"
	"time"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the payment service.
type Repository interface {
	CreatePendingPayment(ctx context.Context, p *models.PendingPayment) error
	GetPendingPaymentByOrderID(ctx context.Context, orderID string) (*models.PendingPayment, error)
	// MarkPaymentSucceeded is the PENDING -> SUCCESS transition, issued as a
	// single conditional update on status. It reports whether this call won
	// the transition; false means another delivery already settled the row.
	MarkPaymentSucceeded(ctx context.Context, orderID, txnNo, bankCode string, completedAt time.Time) (bool, error)
	// MarkPaymentFailed is the PENDING -> FAILED transition, same CAS shape.
	MarkPaymentFailed(ctx context.Context, orderID, txnNo string, completedAt time.Time) (bool, error)

	UpsertSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscriptionByUserID(ctx context.Context, userID uint) (*models.Subscription, error)
	ConfirmBookingBatch(ctx context.Context, batchID string, confirmedAt time.Time, feeRate float64) (int64, error)
	ListBookingsByBatch(ctx context.Context, batchID string) ([]models.Booking, error)

	CreateWebhookEventIfNotExists(ctx context.Context, event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error

	// Transact runs fn against a transactional view of the repository, so a
	// status transition and its domain effect commit or roll back together.
	Transact(ctx context.Context, fn func(Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreatePendingPayment(ctx context.Context, p *models.PendingPayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) GetPendingPaymentByOrderID(ctx context.Context, orderID string) (*models.PendingPayment, error) {
	var p models.PendingPayment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) MarkPaymentSucceeded(ctx context.Context, orderID, txnNo, bankCode string, completedAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.PendingPayment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusSuccess,
			"gateway_txn_no": txnNo,
			"bank_code":      bankCode,
			"completed_at":   &completedAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) MarkPaymentFailed(ctx context.Context, orderID, txnNo string, completedAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.PendingPayment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"gateway_txn_no": txnNo,
			"completed_at":   &completedAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) UpsertSubscription(ctx context.Context, sub *models.Subscription) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"tier",
			"valid_until",
			"last_order_id",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.WithContext(ctx).Where("user_id = ?", sub.UserID).First(sub).Error
}

func (r *gormRepository) GetSubscriptionByUserID(ctx context.Context, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) ConfirmBookingBatch(ctx context.Context, batchID string, confirmedAt time.Time, feeRate float64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("batch_id = ? AND status = ?", batchID, models.BookingStatusPending).
		Updates(map[string]interface{}{
			"status":       models.BookingStatusConfirmed,
			"confirmed_at": &confirmedAt,
			"platform_fee": gorm.Expr("ROUND(price * ?)", feeRate),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *gormRepository) ListBookingsByBatch(ctx context.Context, batchID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Find(&bookings).Error
	return bookings, err
}

func (r *gormRepository) CreateWebhookEventIfNotExists(ctx context.Context, event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "gateway"},
			{Name: "gateway_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.PaymentWebhookEvent
	if err := r.db.WithContext(ctx).Where("gateway = ? AND gateway_event_id = ?", event.Gateway, event.GatewayEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.WithContext(ctx).Model(&models.PaymentWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) Transact(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
