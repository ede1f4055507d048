package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bookiteasy/internal/config"
	"bookiteasy/internal/handler"
	"bookiteasy/internal/middleware"
	"bookiteasy/internal/observability"
	"bookiteasy/internal/repository"
	"bookiteasy/internal/service"
	"bookiteasy/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Session tokens ---
	// Demo tokens (demo_token_<id>) are the default; jwt mode swaps in
	// signed sessions behind the same issuer contract.
	var tokens utils.TokenIssuer
	switch mode := os.Getenv("AUTH_TOKEN_MODE"); mode {
	case "", "demo":
		tokens = utils.NewDemoTokenIssuer()
		log.Println("Auth tokens: demo placeholder mode")
	case "jwt":
		jwtSecret := os.Getenv("JWT_SECRET_KEY")
		if jwtSecret == "" {
			log.Fatalf("JWT_SECRET_KEY not set in environment")
		}
		jwtExpHours, err := strconv.ParseInt(os.Getenv("JWT_EXPIRATION_HOURS"), 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
			jwtExpHours = 24
		}
		tokens = utils.NewJWTUtil(jwtSecret, jwtExpHours)
		log.Println("Auth tokens: jwt mode")
	default:
		log.Fatalf("Unknown AUTH_TOKEN_MODE %q (want demo or jwt)", mode)
	}

	// --- Stores ---
	// Postgres when configured, in-memory demo stores otherwise; both
	// carry the same seed fixtures.
	var (
		userStore repository.UserStore
		apptStore repository.AppointmentStore
		dbPool    interface{ Ping(context.Context) error }
	)
	if os.Getenv("DB_HOST") != "" {
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			log.Fatalf("Failed to load DB config: %v", err)
		}
		pool, err := config.ConnectDB(dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		if err := config.AutoMigrate(pool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		if err := config.SeedDemoData(pool); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		userStore = repository.NewUserStore(pool)
		apptStore = repository.NewAppointmentStore(pool)
		dbPool = pool
	} else {
		log.Println("DB_HOST not set, running with in-memory demo stores")
		userStore = repository.NewMemoryUserStore(repository.SeedUsers())
		apptStore = repository.NewMemoryAppointmentStore(repository.SeedAppointments())
	}

	// --- Flash store ---
	var flashStore repository.FlashStore
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr, Password: os.Getenv("REDIS_PASSWORD")})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		flashStore = repository.NewRedisFlashStore(rdb)
		log.Printf("Booking flash store: redis at %s", redisAddr)
	} else {
		flashStore = repository.NewMemoryFlashStore()
	}

	// --- Availability randomness ---
	// A fixed AVAILABILITY_SEED makes the generated slots reproducible.
	seed := time.Now().UnixNano()
	if seedStr := os.Getenv("AVAILABILITY_SEED"); seedStr != "" {
		parsed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			log.Fatalf("Invalid AVAILABILITY_SEED: %v", err)
		}
		seed = parsed
	}
	rng := rand.New(rand.NewSource(seed))

	catalog := repository.NewServiceCatalog()

	// --- Services ---
	authService := service.NewAuthService(userStore, apptStore, flashStore, tokens, nil)
	availabilityService := service.NewAvailabilityService(apptStore, rng)
	bookingService := service.NewBookingService(apptStore, flashStore, catalog, nil)
	appointmentService := service.NewAppointmentService(apptStore, flashStore)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	serviceHandler := handler.NewServiceHandler(catalog, availabilityService)
	appointmentHandler := handler.NewAppointmentHandler(bookingService, appointmentService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.Use(middleware.RequestID())

	metrics := observability.NewHTTPMetrics(nil)
	router.Use(metrics.Middleware())

	// --- Middlewares ---
	authMW := middleware.AuthMiddleware(tokens, userStore)
	rateLimitMW := middleware.RateLimit(middleware.NewRateLimiter(5, 10))

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, authMW, rateLimitMW)
	serviceHandler.RegisterServiceRoutes(apiGroup)
	appointmentHandler.RegisterAppointmentRoutes(apiGroup, authMW)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		if dbPool != nil {
			if err := dbPool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "memory"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
