package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/infrastructure/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutTestRouter(store *memstore.Store, userID uuid.UUID, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/checkout",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: store.IdempotencyKeys()}),
		func(c *gin.Context) {
			*calls++
			c.JSON(201, gin.H{"success": true, "sale_id": uuid.New().String()})
		},
	)
	return router
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	var calls int
	router := checkoutTestRouter(memstore.New(), uuid.New(), &calls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, calls)
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	var calls int
	store := memstore.New()
	router := checkoutTestRouter(store, uuid.New(), &calls)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(first, req)

	require.Equal(t, 201, first.Code)
	require.Equal(t, 1, calls)

	// Same key again: the handler must not run a second time
	second := httptest.NewRecorder()
	retry := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
	retry.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(second, retry)

	assert.Equal(t, 201, second.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyKeysAreScopedPerUser(t *testing.T) {
	store := memstore.New()

	var callsA, callsB int
	routerA := checkoutTestRouter(store, uuid.New(), &callsA)
	routerB := checkoutTestRouter(store, uuid.New(), &callsB)

	reqA := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
	reqA.Header.Set(IdempotencyKeyHeader, "shared-key")
	routerA.ServeHTTP(httptest.NewRecorder(), reqA)

	reqB := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
	reqB.Header.Set(IdempotencyKeyHeader, "shared-key")
	routerB.ServeHTTP(httptest.NewRecorder(), reqB)

	// same key, different users: both handlers run
	assert.Equal(t, 1, callsA)
	assert.Equal(t, 1, callsB)
}

func TestIdempotencyDistinctKeysBothExecute(t *testing.T) {
	var calls int
	router := checkoutTestRouter(memstore.New(), uuid.New(), &calls)

	for _, key := range []string{"key-1", "key-2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/checkout", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		assert.Equal(t, 201, w.Code)
	}

	assert.Equal(t, 2, calls)
}
