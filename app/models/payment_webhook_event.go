package models

import "time"

// PaymentWebhookEvent stores every inbound gateway notification with
// deduplication metadata for idempotent processing.
type PaymentWebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Gateway         string     `gorm:"type:varchar(20);not null;index:ux_payment_webhook_events_gateway_event,unique,priority:1;index" json:"gateway"`
	GatewayEventID  string     `gorm:"type:varchar(191);not null;default:'';index:ux_payment_webhook_events_gateway_event,unique,priority:2" json:"gateway_event_id"`
	OrderID         string     `gorm:"type:varchar(64);default:'';index" json:"order_id"`
	PayloadJSON     string     `gorm:"type:longtext;not null" json:"payload_json"`
	SignatureValid  bool       `gorm:"default:false;index" json:"signature_valid"`
	ProcessedAt     *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	ProcessingError string     `gorm:"type:text" json:"processing_error"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
