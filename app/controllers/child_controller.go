package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/app/repository"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/entitlements"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

type childRequest struct {
	Name      string `json:"name" form:"name"`
	BirthYear int    `json:"birth_year" form:"birth_year"`
	Grade     string `json:"grade" form:"grade"`
	Notes     string `json:"notes" form:"notes"`
}

// HandleChildList returns all child profiles of the logged-in parent.
func HandleChildList(c *fiber.Ctx) error {
	parentID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	children, err := repos.Child.GetByParentID(parentID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load children")
	}
	return c.JSON(fiber.Map{"children": children})
}

// HandleChildCreate adds a child profile, enforcing the tier limit.
func HandleChildCreate(c *fiber.Ctx) error {
	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Name == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "Name is required")
	}

	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	limits := entitlements.ForTier(entitlements.NormalizeTier(uc.Tier))
	count, err := repos.Child.CountByParentID(uc.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not check limits")
	}
	if count >= int64(limits.MaxChildren) {
		return jsonError(c, fiber.StatusForbidden, "limit_reached", "Your plan does not allow more child profiles")
	}

	child := &models.ChildProfile{
		ParentID:  uc.UserID,
		Name:      req.Name,
		BirthYear: req.BirthYear,
		Grade:     req.Grade,
		Notes:     req.Notes,
	}
	if err := repos.Child.Create(child); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create child profile")
	}
	return c.Status(fiber.StatusCreated).JSON(child)
}

// HandleChildUpdate edits a child profile owned by the logged-in parent.
func HandleChildUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid child id")
	}

	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	parentID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	child, err := repos.Child.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Child profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load child profile")
	}
	if child.ParentID != parentID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Not your child profile")
	}

	if req.Name != "" {
		child.Name = req.Name
	}
	if req.BirthYear != 0 {
		child.BirthYear = req.BirthYear
	}
	child.Grade = req.Grade
	child.Notes = req.Notes

	if err := repos.Child.Update(child); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not update child profile")
	}
	return c.JSON(child)
}

// HandleChildDelete removes a child profile owned by the logged-in parent.
func HandleChildDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid child id")
	}

	parentID := usercontext.GetUserID(c)
	repos := repository.GetGlobalFactory().GetRepositories()

	child, err := repos.Child.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Child profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not load child profile")
	}
	if child.ParentID != parentID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Not your child profile")
	}

	if err := repos.Child.Delete(child.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not delete child profile")
	}
	return c.JSON(fiber.Map{"deleted": true})
}
