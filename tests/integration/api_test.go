//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendyhq/storefront/internal/config"
	"github.com/trendyhq/storefront/internal/delivery/events"
	httpDelivery "github.com/trendyhq/storefront/internal/delivery/http"
	"github.com/trendyhq/storefront/internal/delivery/http/handler"
	"github.com/trendyhq/storefront/internal/pkg/cache"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/repository/catalogfile"
	"github.com/trendyhq/storefront/internal/repository/orderstore"
	"github.com/trendyhq/storefront/internal/usecase/cart"
	"github.com/trendyhq/storefront/internal/usecase/catalog"
	"github.com/trendyhq/storefront/internal/usecase/checkout"
)

func setupTestServer(t *testing.T) http.Handler {
	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.New(cfg.Env)

	products, err := catalogfile.Load(cfg.Store.CatalogPath)
	require.NoError(t, err)

	redisClient, err := cache.WaitForRedis(cfg, 5, 2*time.Second)
	require.NoError(t, err)

	publisher, err := events.NewPublisher(cfg, log)
	require.NoError(t, err)

	orderRepo := orderstore.NewRedisStore(redisClient)

	catalogService := catalog.NewService(products, cfg.Store.ItemsPerPage, log)
	cartService := cart.NewService(cfg.Store.DeliveryFee, log)
	checkoutService := checkout.NewService(cartService, orderRepo, publisher, log)

	catalogHandler := handler.NewCatalogHandler(catalogService, cfg.Store.Currency, log)
	cartHandler := handler.NewCartHandler(cartService, catalogService, cfg.Store.Currency, log)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, cfg.Store.Currency, log)

	router := httpDelivery.NewRouter(catalogHandler, cartHandler, checkoutHandler, cfg, log)
	return router.Setup()
}

func do(t *testing.T, server http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp["success"].(bool))
	return resp["data"].(map[string]interface{})
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	w := do(t, server, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCatalogBrowseAndFilter(t *testing.T) {
	server := setupTestServer(t)

	w := do(t, server, http.MethodGet, "/api/v1/catalog", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["page"])

	w = do(t, server, http.MethodPut, "/api/v1/catalog/search", `{"query": "cap"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, "cap", data["search_query"])
	assert.Equal(t, float64(1), data["page"])
}

func TestCartAndCheckoutFlow(t *testing.T) {
	server := setupTestServer(t)

	// Start from a clean cart; state survives across tests in one process
	w := do(t, server, http.MethodDelete, "/api/v1/cart", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, server, http.MethodPost, "/api/v1/cart/items", `{"product_id": 1, "quantity": 2}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, server, http.MethodPost, "/api/v1/cart/items", `{"product_id": 2}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	items := data["items"].([]interface{})
	assert.Len(t, items, 2)

	w = do(t, server, http.MethodGet, "/api/v1/checkout/quote?coupon=1YEAR19", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, true, data["coupon_applied"])

	orderJSON := `{
		"first_name": "Ada",
		"last_name": "Obi",
		"email": "ada@example.com",
		"phone": "+2348012345678",
		"address": "12 Marina Road, Lagos",
		"coupon": "1YEAR19"
	}`
	w = do(t, server, http.MethodPost, "/api/v1/checkout/order", orderJSON)
	assert.Equal(t, http.StatusCreated, w.Code)
	orderData := decodeData(t, w)
	assert.Equal(t, true, orderData["coupon_applied"])

	// Cart is cleared after placing the order
	w = do(t, server, http.MethodGet, "/api/v1/cart", "")
	data = decodeData(t, w)
	assert.Empty(t, data["items"])

	// The snapshot is readable back from Redis
	w = do(t, server, http.MethodGet, "/api/v1/checkout/order/last", "")
	assert.Equal(t, http.StatusOK, w.Code)
	lastData := decodeData(t, w)
	assert.Equal(t, orderData["id"], lastData["id"])
}
