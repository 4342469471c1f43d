package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
)

// setupTestStore swaps the package store for an in-memory one.
func setupTestStore(t *testing.T) {
	t.Helper()
	prev := sessionStore
	sessionStore = fibersession.New(fibersession.Config{
		KeyLookup: "cookie:session_id",
	})
	t.Cleanup(func() { sessionStore = prev })
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestSessionValueLifecycle(t *testing.T) {
	setupTestStore(t)

	app := fiber.New()
	app.Post("/set", func(c *fiber.Ctx) error {
		return SetSessionValue(c, "user_tier", "premium")
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		return c.SendString(GetSessionValue(c, "user_tier"))
	})
	app.Post("/clear", func(c *fiber.Ctx) error {
		return DeleteSessionValue(c, "user_tier")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/set", nil))
	assert.NoError(t, err)
	cookie := sessionCookie(t, resp)

	get := httptest.NewRequest(http.MethodGet, "/get", nil)
	get.AddCookie(cookie)
	resp, err = app.Test(get)
	assert.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "premium", string(body))

	// Clearing the cached value forces the next read to miss, the way the
	// checkout and return handlers drop a stale tier.
	clearReq := httptest.NewRequest(http.MethodPost, "/clear", nil)
	clearReq.AddCookie(cookie)
	_, err = app.Test(clearReq)
	assert.NoError(t, err)

	get = httptest.NewRequest(http.MethodGet, "/get", nil)
	get.AddCookie(cookie)
	resp, err = app.Test(get)
	assert.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "", string(body))
}

func TestSessionHelpersWithoutStore(t *testing.T) {
	prev := sessionStore
	sessionStore = nil
	t.Cleanup(func() { sessionStore = prev })

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Error(t, SetSessionValue(c, "k", "v"))
		assert.Error(t, DeleteSessionValue(c, "k"))
		assert.Equal(t, "", GetSessionValue(c, "k"))
		return nil
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NoError(t, err)
}
