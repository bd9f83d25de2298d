package middleware

import (
	"net/http"
	"time"

	"mireparto/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiterStore keeps counters in Redis so every instance shares them.
// Without a client, counters live in memory.
func NewLimiterStore(rdb *redis.Client) limiter.Store {
	if rdb == nil {
		return memory.NewStore()
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   "mireparto:limiter",
		MaxRetry: 3,
	})
	if err != nil {
		log.Warn().Err(err).Msg("rate limiter: redis store unavailable, using memory")
		return memory.NewStore()
	}
	return store
}

// RateLimiter allows perMinute requests per IP on every route it wraps.
func RateLimiter(store limiter.Store, perMinute int) gin.HandlerFunc {
	return newLimiter(store, perMinute, "", "Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// LoginRateLimiter limits login attempts to 20 per minute per IP. Its
// counters are kept apart from RateLimiter's even when both share a store.
func LoginRateLimiter(store limiter.Store) gin.HandlerFunc {
	return newLimiter(store, 20, "login:", "Demasiados intentos de login. Intente en 1 minuto.")
}

func newLimiter(store limiter.Store, perMinute int, keyPrefix, msg string) gin.HandlerFunc {
	instance := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: int64(perMinute)})
	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return keyPrefix + c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken store must not take the API down
			log.Error().Err(err).Msg("rate limiter: store error")
			c.Next()
		}),
	)
}
