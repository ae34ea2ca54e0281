package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/orderly-app/orderly/internal/auth"
	"github.com/orderly-app/orderly/internal/config"
	"github.com/orderly-app/orderly/internal/identity"
	"github.com/orderly-app/orderly/internal/middleware"
	"github.com/orderly-app/orderly/internal/notification"
	"github.com/orderly-app/orderly/internal/otp"
	"github.com/orderly-app/orderly/internal/password"
	"github.com/orderly-app/orderly/internal/role"
	"github.com/orderly-app/orderly/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Postgres in deployed environments, in-memory in dev.
	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	var roleRepo role.Repository
	if d.DB != nil {
		roleRepo = role.NewPostgresRepository(d.DB)
	} else {
		roleRepo = role.NewMemoryRepository()
	}
	var otpStore otp.Store
	if d.Cache != nil {
		otpStore = otp.NewRedisStore(d.Cache, d.Cfg.OTPTTL)
	} else {
		otpStore = otp.NewMemoryStore()
	}

	// Services and handlers
	policy := password.DefaultPolicy()
	identitySvc := identity.NewService(userRepo, roleRepo, policy)
	tokenSvc := token.NewService([]byte(d.Cfg.JWTSecret), d.Cfg.TokenTTL)
	otpSvc := otp.NewService(otpStore, d.Cfg.OTPLength, d.Cfg.OTPTTL)
	notifier := notification.NewLoggerNotifier(d.Logger)
	authSvc := auth.NewService(identitySvc, userRepo, tokenSvc, otpSvc, policy, notifier, d.Logger)
	authHandler := auth.NewHandler(authSvc, identitySvc, d.Logger)
	roleHandler := role.NewHandler(role.NewService(roleRepo), d.Logger)

	authDeps := middleware.AuthDeps{Users: userRepo, Roles: roleRepo, Tokens: tokenSvc}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals(middleware.RequestIDHeader).(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler)

	// Authenticated routes: any valid, active account.
	api.Get("/me", middleware.Authorize(authDeps), authHandler.Profile)
	api.Patch("/me", middleware.Authorize(authDeps), authHandler.UpdateProfile)

	// Role catalogue management.
	RegisterRoleRoutes(api, roleHandler, authDeps)

	// Account administration.
	RegisterUserAdminRoutes(api, identitySvc, authDeps, d.Logger)

	return nil
}
