package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/renthaven/property-rental-marketplace/internal/config"
	"github.com/renthaven/property-rental-marketplace/internal/database"
	"github.com/renthaven/property-rental-marketplace/internal/handler"
	custommw "github.com/renthaven/property-rental-marketplace/internal/middleware"
	"github.com/renthaven/property-rental-marketplace/internal/notify"
	"github.com/renthaven/property-rental-marketplace/internal/queue"
	"github.com/renthaven/property-rental-marketplace/internal/repository"
	"github.com/renthaven/property-rental-marketplace/internal/router"
	"github.com/renthaven/property-rental-marketplace/internal/workflow"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	manager := database.NewManager(cfg.DBPath, cfg.BcryptCost)
	defer func() { _ = manager.Close() }()

	// Initialize eagerly so schema drift aborts startup instead of the
	// first request. A SchemaIntegrityError is an ops problem, not a
	// retryable one; say so clearly.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := manager.Acquire(ctx)
	cancel()
	if err != nil {
		var drift *database.SchemaIntegrityError
		if errors.As(err, &drift) {
			log.Fatalf("schema integrity check failed, refusing to serve: %v", err)
		}
		log.Fatalf("store initialization failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	properties := repository.NewPropertyRepo(db)
	bookings := repository.NewBookingRepo(db)
	requests := repository.NewRoleRequestRepo(db)
	contacts := repository.NewContactRepo(db)
	notifications := repository.NewNotificationRepo(db)
	settings := repository.NewSettingsRepo(db)

	dispatcher := notify.NewDispatcher(notifications, cfg.PublishEvents)

	roleRequests := &workflow.RoleRequests{DB: db, Users: users, Requests: requests, Notify: dispatcher}
	listings := &workflow.Properties{DB: db, Properties: properties, Notify: dispatcher}
	stays := &workflow.Bookings{DB: db, Bookings: bookings, Properties: properties, Settings: settings, Notify: dispatcher}
	accounts := &workflow.Users{Users: users, Notify: dispatcher}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis-backed rate limiting; nil client degrades to a no-op.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}
	e.Use(custommw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := custommw.NewRedisCache(config.LoadCacheConfig(), rdb)

	pub := &handler.PublicHandler{Properties: properties, Contacts: contacts, Settings: settings}
	account := &handler.AccountHandler{Users: users, Settings: settings, BcryptCost: cfg.BcryptCost}
	user := &handler.UserHandler{
		Stays: stays, RoleRequests: roleRequests, Users: users,
		Bookings: bookings, Requests: requests,
		Notifications: notifications, Contacts: contacts,
	}
	owner := &handler.OwnerHandler{Listings: listings, Stays: stays, Properties: properties, Bookings: bookings}
	admin := &handler.AdminHandler{
		Accounts: accounts, Listings: listings, Stays: stays, RoleRequests: roleRequests,
		Users: users, Properties: properties, Bookings: bookings, Requests: requests,
		Contacts: contacts, Settings: settings, Notify: dispatcher,
	}

	router.RegisterHealth(e, manager)
	router.RegisterPublic(e, pub, account, cache)
	router.RegisterUser(e, user, account, cfg.JWTSecret)
	router.RegisterOwner(e, owner, cfg.JWTSecret)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	if cfg.PublishEvents {
		go func() {
			if err := queue.StartNotificationConsumer(); err != nil {
				log.Printf("notification consumer stopped: %v", err)
			}
		}()
	}

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then drain requests and close the
	// store handle.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := manager.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
