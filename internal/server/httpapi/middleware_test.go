package httpapi

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritaslab/veritas/internal/server/auth"
	"github.com/veritaslab/veritas/internal/server/models"
)

type recordedAudit struct {
	operatorID string
	action     string
	details    string
}

type fakeDispatcher struct {
	mu     sync.Mutex
	audits []recordedAudit
	done   chan struct{}
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{done: make(chan struct{}, 16)}
}

func (d *fakeDispatcher) DispatchAudit(operatorID, action, details string) {
	d.mu.Lock()
	d.audits = append(d.audits, recordedAudit{operatorID, action, details})
	d.mu.Unlock()
	d.done <- struct{}{}
}

func (d *fakeDispatcher) wait(t *testing.T) {
	t.Helper()
	select {
	case <-d.done:
	case <-time.After(time.Second):
		t.Fatal("no audit dispatched")
	}
}

func TestSessionMiddleware(t *testing.T) {
	secret := []byte("test-secret")

	app := fiber.New()
	app.Get("/whoami", SessionMiddleware(secret), func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"operator_id": OperatorID(c)})
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		token, err := auth.GenerateToken("OP1", []byte("other-secret"), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := auth.GenerateToken("OP1", secret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAuditMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	dispatcher := newFakeDispatcher()

	app := fiber.New()
	app.Use(AuditMiddleware(dispatcher))
	app.Get("/public", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/private", SessionMiddleware(secret), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("anonymous request audited", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/public", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		dispatcher.wait(t)
		dispatcher.mu.Lock()
		last := dispatcher.audits[len(dispatcher.audits)-1]
		dispatcher.mu.Unlock()

		assert.Equal(t, "anonymous", last.operatorID)
		assert.Equal(t, models.AuditHTTPRequest, last.action)
		assert.Contains(t, last.details, `"/public"`)
	})

	t.Run("authenticated request attributed to operator", func(t *testing.T) {
		token, err := auth.GenerateToken("OP1", secret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		dispatcher.wait(t)
		dispatcher.mu.Lock()
		last := dispatcher.audits[len(dispatcher.audits)-1]
		dispatcher.mu.Unlock()

		assert.Equal(t, "OP1", last.operatorID)
	})
}
