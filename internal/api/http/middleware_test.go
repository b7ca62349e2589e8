package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/travel-support-desk/internal/observability"
)

func TestErrorMiddleware_HidesInternalCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), metrics, 0)
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("connection refused") })
	app.Get("/panic", func(*fiber.Ctx) error { panic("kaboom") })

	for _, path := range []string{"/boom", "/panic"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, path)

		var out map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "Internal server error", out["message"])
		assert.NotContains(t, out, "errors")
	}

	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 2, logs.FilterMessage("request failed").Len())
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/boom|GET|500"])
}
