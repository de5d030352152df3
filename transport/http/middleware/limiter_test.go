package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelbooker/config"
	otelMocks "hotelbooker/infras/otel/mocks"
	"hotelbooker/shared/cache"
	cacheMocks "hotelbooker/shared/cache/mocks"
	"hotelbooker/shared/constant"
	"hotelbooker/transport/http/middleware"
)

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60
	cfg.App.RateLimiter.SkipPaths = []string{"/api/webhooks/cashfree"}

	return cfg
}

func limited(t *testing.T, cfg *config.Config) (http.Handler, *cacheMocks.MockRedisCache) {
	t.Helper()

	store := cacheMocks.NewMockRedisCache(gomock.NewController(t))
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, store)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return app.RateLimit()(ok), store
}

func TestRateLimit(t *testing.T) {
	t.Run("first request in window", func(t *testing.T) {
		handler, store := limited(t, limiterConfig())

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		store.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		handler, store := limited(t, limiterConfig())

		store.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ string, value any) error {
				*value.(*int) = 2

				return nil
			})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("webhook path is not counted", func(t *testing.T) {
		handler, _ := limited(t, limiterConfig())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhooks/cashfree", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cache outage lets requests through", func(t *testing.T) {
		handler, store := limited(t, limiterConfig())

		store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hotels", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
