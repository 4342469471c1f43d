package models

import "time"

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

const (
	PaymentKindSubscription = "subscription"
	PaymentKindBooking      = "booking"
)

// PendingPayment is a checkout order awaiting a bank-transfer notification.
// Rows are created at checkout, transitioned exactly once by the reconciler
// (PENDING -> SUCCESS or PENDING -> FAILED) and never deleted.
type PendingPayment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OrderID      string     `gorm:"type:varchar(64);not null;uniqueIndex:ux_pending_payments_order" json:"order_id"`
	Kind         string     `gorm:"type:varchar(20);not null;index" json:"kind"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Amount       int64      `gorm:"not null" json:"amount"` // expected amount, minor currency units
	Tier         string     `gorm:"type:varchar(20);default:''" json:"tier"`     // subscription orders: tier chosen at checkout
	BatchID      string     `gorm:"type:varchar(64);default:''" json:"batch_id"` // booking orders: booking batch reference
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	GatewayTxnNo string     `gorm:"type:varchar(100);default:''" json:"gateway_txn_no"`
	BankCode     string     `gorm:"type:varchar(20);default:''" json:"bank_code"`
	CompletedAt  *time.Time `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsSettled reports whether the order reached a terminal status.
func (p *PendingPayment) IsSettled() bool {
	return p.Status != PaymentStatusPending
}
