package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp mirrors the app configuration from cmd/api.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
}

// fakeEntitlementRepo records upserts and answers lookups from a fixed map.
type fakeEntitlementRepo struct {
	upserts   []string
	premium   map[string]bool
	lookups   []string
	upsertErr error
	lookupErr error
}

func (f *fakeEntitlementRepo) Upsert(_ context.Context, email string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, email)
	return nil
}

func (f *fakeEntitlementRepo) IsPremium(_ context.Context, email string) (bool, error) {
	f.lookups = append(f.lookups, email)
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.premium[email], nil
}

func decodeJSONBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), "body: %s", body)
	return decoded
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
