package jobqueue

import (
	"fmt"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/database"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/env"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/mail"
)

// processActivationMailJob sends the account activation mail
func (q *Queue) processActivationMailJob(job *Job) error {
	payload, err := ActivationMailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid activation mail payload: %w", err)
	}

	baseURL := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	link := fmt.Sprintf("%s/auth/activate?token=%s", baseURL, payload.Token)

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>please confirm your account by clicking the link below:</p><p><a href=\"%s\">Activate account</a></p>",
		payload.Name, link,
	)
	return mail.SendMail(payload.Email, "Activate your account", body)
}

// processPaymentReceiptJob mails a receipt for a settled order
func (q *Queue) processPaymentReceiptJob(job *Job) error {
	payload, err := PaymentReceiptJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid payment receipt payload: %w", err)
	}

	db := database.GetDB()

	var pending models.PendingPayment
	if err := db.Where("order_id = ?", payload.OrderID).First(&pending).Error; err != nil {
		return fmt.Errorf("order %s not found: %w", payload.OrderID, err)
	}
	if pending.Status != models.PaymentStatusSuccess {
		// Not settled yet; let the retry pick it up later
		return fmt.Errorf("order %s not settled yet", payload.OrderID)
	}

	var user models.User
	if err := db.First(&user, pending.UserID).Error; err != nil {
		return fmt.Errorf("user %d not found: %w", pending.UserID, err)
	}

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>we received your payment of %d VND for order %s. Thank you!</p>",
		user.Name, pending.Amount, pending.OrderID,
	)
	if err := mail.SendMail(user.Email, "Payment received", body); err != nil {
		return err
	}

	// Paid booking batches also notify the tutors
	if pending.Kind == models.PaymentKindBooking && pending.BatchID != "" {
		if _, enqErr := q.EnqueueJob(JobTypeBookingNotice, BookingNoticeJobPayload{BatchID: pending.BatchID}.ToMap()); enqErr != nil {
			return fmt.Errorf("failed to enqueue booking notice for batch %s: %w", pending.BatchID, enqErr)
		}
	}
	return nil
}

// processBookingNoticeJob tells the tutors of a batch about their confirmed lessons
func (q *Queue) processBookingNoticeJob(job *Job) error {
	payload, err := BookingNoticeJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid booking notice payload: %w", err)
	}

	db := database.GetDB()

	var bookings []models.Booking
	if err := db.Where("batch_id = ? AND status = ?", payload.BatchID, models.BookingStatusConfirmed).Find(&bookings).Error; err != nil {
		return fmt.Errorf("failed to load batch %s: %w", payload.BatchID, err)
	}
	if len(bookings) == 0 {
		return nil
	}

	perTutor := make(map[uint]int)
	for _, b := range bookings {
		perTutor[b.TutorID]++
	}

	for tutorID, count := range perTutor {
		var profile models.TutorProfile
		if err := db.First(&profile, tutorID).Error; err != nil {
			return fmt.Errorf("tutor profile %d not found: %w", tutorID, err)
		}
		var user models.User
		if err := db.First(&user, profile.UserID).Error; err != nil {
			return fmt.Errorf("user %d not found: %w", profile.UserID, err)
		}

		body := fmt.Sprintf(
			"<p>Hello %s,</p><p>%d new lesson(s) were just booked and paid. Check your schedule for the details.</p>",
			user.Name, count,
		)
		if err := mail.SendMail(user.Email, "New confirmed bookings", body); err != nil {
			return err
		}
	}
	return nil
}

// EnqueueActivationMail queues the activation mail for a freshly registered user.
func EnqueueActivationMail(userID uint, email, name, token string) error {
	payload := ActivationMailJobPayload{UserID: userID, Email: email, Name: name, Token: token}
	_, err := GetManager().GetQueue().EnqueueJob(JobTypeActivationMail, payload.ToMap())
	return err
}

// EnqueuePaymentReceipt queues the receipt mail for a settled order.
func EnqueuePaymentReceipt(orderID string) error {
	payload := PaymentReceiptJobPayload{OrderID: orderID}
	_, err := GetManager().GetQueue().EnqueueJob(JobTypePaymentReceipt, payload.ToMap())
	return err
}
