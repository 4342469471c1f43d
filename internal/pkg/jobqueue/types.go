package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeActivationMail JobType = "activation_mail"
	JobTypePaymentReceipt JobType = "payment_receipt"
	JobTypeBookingNotice  JobType = "booking_notice"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// ActivationMailJobPayload contains the payload for account activation mails
type ActivationMailJobPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// ToMap converts the payload to a map for storage
func (p ActivationMailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"user_id": p.UserID,
		"email":   p.Email,
		"name":    p.Name,
		"token":   p.Token,
	}
}

// FromMap creates a payload from a map
func ActivationMailJobPayloadFromMap(data map[string]interface{}) (*ActivationMailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload ActivationMailJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// PaymentReceiptJobPayload contains the payload for payment receipt mails
type PaymentReceiptJobPayload struct {
	OrderID string `json:"order_id"`
}

// ToMap converts the payload to a map for storage
func (p PaymentReceiptJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"order_id": p.OrderID,
	}
}

// FromMap creates a payload from a map
func PaymentReceiptJobPayloadFromMap(data map[string]interface{}) (*PaymentReceiptJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload PaymentReceiptJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// BookingNoticeJobPayload contains the payload for tutor booking notices
type BookingNoticeJobPayload struct {
	BatchID string `json:"batch_id"`
}

func (p BookingNoticeJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"batch_id": p.BatchID,
	}
}

func BookingNoticeJobPayloadFromMap(data map[string]interface{}) (*BookingNoticeJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var payload BookingNoticeJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
