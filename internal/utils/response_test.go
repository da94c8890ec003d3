package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestSendSuccess(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "created", map[string]string{"id": "1"})
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	require.Equal(t, "created", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})

	require.Equal(t, "success", body.Message)
}

func TestSendError(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusBadRequest, "bad input")
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.False(t, body.Success)
	require.Equal(t, "bad input", body.Message)
}

func TestSendUnauthorizedSetsChallenge(t *testing.T) {
	resp, body := performRequest(t, SendUnauthorized)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	require.Equal(t, "could not validate credentials", body.Message)
}
