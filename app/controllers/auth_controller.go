package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/app/repository"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/jobqueue"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/middleware"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/session"
)

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// HandleAuthRegister creates a new parent or tutor account and queues the
// activation mail.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.ROLE_PARENT
	}
	if role != models.ROLE_PARENT && role != models.ROLE_TUTOR {
		return jsonError(c, fiber.StatusBadRequest, "bad_role", "Role must be parent or tutor")
	}

	user, err := models.CreateUser(req.Name, strings.ToLower(strings.TrimSpace(req.Email)), req.Password, role)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := user.GenerateActivationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create account")
	}
	user.IPv4 = GetClientIP(c)

	repos := repository.GetGlobalFactory().GetRepositories()
	if existing, err := repos.User.GetByEmail(user.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "An account with this email already exists")
	}

	if err := repos.User.Create(user); err != nil {
		log.Errorf("failed to create user %s: %v", user.Email, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not create account")
	}

	if role == models.ROLE_TUTOR {
		profile := &models.TutorProfile{UserID: user.ID}
		if err := repos.Tutor.Create(profile); err != nil {
			log.Errorf("failed to create tutor profile for user %d: %v", user.ID, err)
		}
	}

	if err := jobqueue.EnqueueActivationMail(user.ID, user.Email, user.Name, user.ActivationToken); err != nil {
		log.Warnf("failed to enqueue activation mail for %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"status": user.Status,
	})
}

// HandleAuthActivate switches an account from inactive to active when the
// token matches.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing_token", "Activation token is required")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "invalid_token", "Unknown activation token")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not activate account")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not activate account")
	}

	return c.JSON(fiber.Map{"activated": true})
}

// HandleAuthLogin verifies the credentials and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	user, err := repos.User.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || user == nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "Email or password is wrong")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "inactive_account", "Account is not activated yet")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repos.User.Update(user); err != nil {
		log.Warnf("failed to record login time for user %d: %v", user.ID, err)
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not open session")
	}
	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUserName, user.Name)
	sess.Set(middleware.SessionKeyUserRole, user.Role)
	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Could not save session")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// HandleAuthLogout destroys the current session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Warnf("failed to destroy session: %v", err)
		}
	}
	return c.JSON(fiber.Map{"logged_out": true})
}
