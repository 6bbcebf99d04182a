package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPremiumApp(repo *fakeEntitlementRepo) *fiber.App {
	app := newTestApp()
	app.Get("/premium-status", NewPremiumHandler(repo).HandlePremiumStatus)
	return app
}

func TestPremiumStatusRequiresEmail(t *testing.T) {
	app := newPremiumApp(&fakeEntitlementRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/premium-status", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email required", decodeJSONBody(t, resp)["error"])
}

func TestPremiumStatusNormalizesBeforeLookup(t *testing.T) {
	repo := &fakeEntitlementRepo{premium: map[string]bool{"a@b.com": true}}
	app := newPremiumApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/premium-status?email=A%40B.COM", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSONBody(t, resp)
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, true, body["premium"])
	assert.Equal(t, []string{"a@b.com"}, repo.lookups)
}

func TestPremiumStatusUnknownEmail(t *testing.T) {
	app := newPremiumApp(&fakeEntitlementRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/premium-status?email=nobody%40b.com", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decodeJSONBody(t, resp)["premium"])
}

func TestPremiumStatusStoreError(t *testing.T) {
	repo := &fakeEntitlementRepo{lookupErr: fmt.Errorf("airtable error: status 500: boom")}
	app := newPremiumApp(repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/premium-status?email=a%40b.com", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeJSONBody(t, resp)
	assert.Equal(t, "store_error", body["error"])
	assert.Contains(t, body["details"], "boom")
}
