package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/poiuyt183/efunny-learn-sub001/app/repository"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

const tutorPageSize = 20

type tutorProfileRequest struct {
	Headline   string `json:"headline" form:"headline"`
	Bio        string `json:"bio" form:"bio"`
	Subjects   string `json:"subjects" form:"subjects"`
	HourlyRate int64  `json:"hourly_rate" form:"hourly_rate"`
	IsListed   *bool  `json:"is_listed" form:"is_listed"`
}

// HandleTutorList returns listed tutors, optionally filtered by subject.
func HandleTutorList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * tutorPageSize

	repos := repository.GetGlobalFactory().GetRepositories()

	subject := strings.TrimSpace(c.Query("subject"))
	var (
		tutors interface{}
		err    error
	)
	if subject != "" {
		tutors, err = repos.Tutor.SearchBySubject(subject, offset, tutorPageSize)
	} else {
		tutors, err = repos.Tutor.ListListed(offset, tutorPageSize)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load tutors")
	}

	return c.JSON(fiber.Map{
		"tutors": tutors,
		"page":   page,
	})
}

// HandleTutorDetail returns a single tutor profile.
func HandleTutorDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid tutor id")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	profile, err := repos.Tutor.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Tutor not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load tutor")
	}
	if !profile.IsListed {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Tutor not found")
	}

	return c.JSON(fiber.Map{
		"tutor":  profile,
		"rating": profile.AverageRating(),
	})
}

// HandleTutorProfileUpdate lets a tutor edit their own profile.
func HandleTutorProfileUpdate(c *fiber.Ctx) error {
	var req tutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	profile, err := repos.Tutor.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Tutor profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load profile")
	}

	if req.Headline != "" {
		profile.Headline = req.Headline
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Subjects != "" {
		profile.Subjects = req.Subjects
	}
	if req.HourlyRate > 0 {
		profile.HourlyRate = req.HourlyRate
	}
	if req.IsListed != nil {
		profile.IsListed = *req.IsListed
	}

	if err := repos.Tutor.Update(profile); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not update profile")
	}
	return c.JSON(profile)
}
