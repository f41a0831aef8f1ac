package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
)

func respondErrorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func TestRespondError_InternalHidesCause(t *testing.T) {
	var logged bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logged)
	defer func() { log.Logger = prev }()

	cause := fmt.Errorf("dial tcp db-primary.internal:5432: connection refused")
	app := respondErrorApp(cause)

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "INTERNAL", er.Code)
	assert.Equal(t, "internal server error", er.Message)
	assert.NotContains(t, string(body), "db-primary", "cause must stay out of the response")

	assert.Contains(t, logged.String(), "db-primary.internal:5432", "cause goes to the server log")
	assert.Contains(t, logged.String(), "/boom")
}

func TestRespondError_WrappedSentinelsStillMap(t *testing.T) {
	app := respondErrorApp(fmt.Errorf("loading item: %w", domain.ErrNotFound))

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var er dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.Equal(t, "NOT_FOUND", er.Code)
}
