package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/app/repository"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/entitlements"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

const bookingPageSize = 20

type bookingSlotRequest struct {
	StartsAt    time.Time `json:"starts_at" form:"starts_at"`
	DurationMin int       `json:"duration_min" form:"duration_min"`
}

type bookingBatchRequest struct {
	TutorID uint                 `json:"tutor_id" form:"tutor_id"`
	ChildID uint                 `json:"child_id" form:"child_id"`
	Subject string               `json:"subject" form:"subject"`
	Slots   []bookingSlotRequest `json:"slots"`
}

// HandleBookingCreate creates a batch of pending bookings for one tutor.
// The batch stays pending until its payment settles.
func HandleBookingCreate(c *fiber.Ctx) error {
	var req bookingBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.TutorID == 0 || req.ChildID == 0 || len(req.Slots) == 0 {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Tutor, child and at least one slot are required")
	}

	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	child, err := repos.Child.GetByID(req.ChildID)
	if err != nil || child.ParentID != uc.UserID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Not your child profile")
	}

	tutor, err := repos.Tutor.GetByID(req.TutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Tutor not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load tutor")
	}
	if !tutor.IsListed {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Tutor not found")
	}

	limits := entitlements.ForTier(entitlements.NormalizeTier(uc.Tier))
	confirmed, err := repos.Booking.CountConfirmedByParentSince(uc.UserID, 30)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not check limits")
	}
	if confirmed+int64(len(req.Slots)) > int64(limits.MonthlyBookings) {
		return jsonError(c, fiber.StatusForbidden, "limit_reached", "Your plan does not allow this many bookings per month")
	}

	batchID := uuid.New().String()
	now := time.Now()
	bookings := make([]models.Booking, 0, len(req.Slots))
	for _, slot := range req.Slots {
		if slot.DurationMin <= 0 || slot.StartsAt.Before(now) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Slots must lie in the future with a positive duration")
		}
		price := tutor.HourlyRate * int64(slot.DurationMin) / 60
		bookings = append(bookings, models.Booking{
			BatchID:     batchID,
			ParentID:    uc.UserID,
			ChildID:     child.ID,
			TutorID:     tutor.ID,
			Subject:     req.Subject,
			StartsAt:    slot.StartsAt,
			DurationMin: slot.DurationMin,
			Price:       price,
			Status:      models.BookingStatusPending,
		})
	}

	if err := repos.Booking.CreateBatch(bookings); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create bookings")
	}

	var total int64
	for _, b := range bookings {
		total += b.Price
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"batch_id": batchID,
		"count":    len(bookings),
		"total":    total,
	})
}

// HandleBookingList returns the caller's bookings, parents see their own
// orders and tutors their incoming lessons.
func HandleBookingList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * bookingPageSize

	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	var (
		bookings []models.Booking
		err      error
	)
	if uc.Role == models.ROLE_TUTOR {
		tutor, terr := repos.Tutor.GetByUserID(uc.UserID)
		if terr != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load profile")
		}
		bookings, err = repos.Booking.GetByTutorID(tutor.ID, offset, bookingPageSize)
	} else {
		bookings, err = repos.Booking.GetByParentID(uc.UserID, offset, bookingPageSize)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load bookings")
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"page":     page,
	})
}

// HandleBookingCancel cancels all still-pending bookings of a batch.
func HandleBookingCancel(c *fiber.Ctx) error {
	batchID := c.Params("batchId")
	if batchID == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Batch id is required")
	}

	parentID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	cancelled, err := repos.Booking.CancelBatch(batchID, parentID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not cancel bookings")
	}
	if cancelled == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "No pending bookings in this batch")
	}

	return c.JSON(fiber.Map{"cancelled": cancelled})
}
