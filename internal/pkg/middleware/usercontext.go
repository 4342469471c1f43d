package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poiuyt183/efunny-learn-sub001/app/models"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/database"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/session"
	"github.com/poiuyt183/efunny-learn-sub001/internal/pkg/usercontext"
)

// Session keys written at login time.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyUserRole = "user_role"
	SessionKeyUserTier = "user_tier"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes user session handling so handlers never touch the raw
// session themselves.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous user
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	username := session.GetSessionValue(c, SessionKeyUserName)
	role := session.GetSessionValue(c, SessionKeyUserRole)

	// Determine subscription tier with session-first strategy
	tier := session.GetSessionValue(c, SessionKeyUserTier)
	if tier == "" {
		tier = models.TierFree
		if db := database.GetDB(); db != nil {
			var sub models.Subscription
			if err := db.Where("user_id = ?", userID).First(&sub).Error; err == nil && sub.Tier != "" {
				tier = sub.Tier
			}
		}
		// cache in session for subsequent requests
		_ = session.SetSessionValue(c, SessionKeyUserTier, tier)
	}

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		Role:       role,
		IsLoggedIn: true,
		Tier:       tier,
	})

	return c.Next()
}
