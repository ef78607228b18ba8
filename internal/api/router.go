package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/astralgate/auth-system/docs"
	"github.com/astralgate/auth-system/internal/api/handler"
	"github.com/astralgate/auth-system/internal/api/metrics"
	"github.com/astralgate/auth-system/internal/api/middleware"
	"github.com/astralgate/auth-system/internal/core/ports"
	"github.com/astralgate/auth-system/internal/core/service"
	"github.com/astralgate/auth-system/internal/crypto"
	mongodb "github.com/astralgate/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/astralgate/auth-system/internal/infrastructure/db/redis"
)

// Options carries everything the router needs beyond its datastores.
type Options struct {
	// Sessions is the store backing issued sessions. The composition root
	// owns it so the background sweeper can share the same instance.
	Sessions      ports.SessionStore
	SessionTTL    time.Duration
	ChallengeTTL  time.Duration
	SecureCookies bool
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	directory := mongodb.NewAccountRepository(db)
	hasher := timedHasher{inner: crypto.NewHasher()}
	challenges := redisdb.NewChallengeVerifier(rdb, opts.ChallengeTTL)

	authService := service.NewAuthService(directory, opts.Sessions, hasher, opts.SessionTTL)
	authHandler := handler.NewAuthHandler(authService, challenges, opts.SecureCookies)
	challengeHandler := handler.NewChallengeHandler(challenges)
	sessionMiddleware := middleware.Session(authService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/current-user", authHandler.CurrentUser, sessionMiddleware)
	e.GET("/auth/challenge", challengeHandler.Issue)

	// --- Operational surfaces ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// timedHasher reports derivation cost to Prometheus without the crypto
// package having to know about metrics.
type timedHasher struct {
	inner ports.PasswordHasher
}

func (t timedHasher) Hash(password string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.HashingDuration.Observe(time.Since(start).Seconds())
	}()
	return t.inner.Hash(password)
}

func (t timedHasher) Verify(password, digest string) bool {
	start := time.Now()
	defer func() {
		metrics.HashingDuration.Observe(time.Since(start).Seconds())
	}()
	return t.inner.Verify(password, digest)
}
