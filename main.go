package main

import (
	"TravelMate/config/database"
	"TravelMate/config/environment"
	"TravelMate/controllers"
	"TravelMate/middleware"
	v1 "TravelMate/routes/v1"
	"TravelMate/services"
	"TravelMate/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := environment.Load(); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	logger, err := utils.NewLogger(environment.IsDebug())
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase is always needed for ID token verification unless a JWT secret is set
	needFirebase := environment.GetStoreBackend() == "firestore" || environment.GetJWTSecret() == ""
	if needFirebase {
		if err := database.InitFirebase(ctx, logger); err != nil {
			return err
		}
		defer database.CloseFirebase()
	}

	var store services.VacationStore
	switch backend := environment.GetStoreBackend(); backend {
	case "firestore":
		store = services.NewFirestoreStore(database.GetFirestoreClient())
	case "mongo":
		if err := database.InitMongo(ctx, logger); err != nil {
			return err
		}
		defer database.CloseMongo(context.Background())
		store = services.NewMongoStore(database.GetMongoDatabase())
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	var provider services.PlaceProvider = services.NewTripAdvisorClient(services.TripAdvisorConfig{
		APIKey:        environment.GetTripAdvisorKey(),
		BaseURL:       environment.GetTripAdvisorBaseURL(),
		Language:      environment.GetPlacesLanguage(),
		RatePerSecond: environment.GetPlacesRatePerSecond(),
		Timeout:       environment.GetPlacesTimeout(),
	}, logger)

	redisClient, err := database.InitRedis(ctx, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		provider = services.NewCachedPlaceProvider(provider, redisClient, environment.GetPlaceCacheTTL(), logger)
	}

	var resolver services.IntentResolver
	if key := environment.GetOpenAIKey(); key != "" {
		resolver = services.NewOpenAIIntentResolver(key, environment.GetOpenAIModel(), environment.GetOpenAIBaseURL(), logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, only structured intents are accepted")
	}

	var verifier middleware.TokenVerifier
	if secret := environment.GetJWTSecret(); secret != "" {
		verifier = middleware.JWTVerifier{Secret: []byte(secret)}
	} else {
		verifier = middleware.FirebaseVerifier{Client: database.GetFirebaseAuthClient()}
	}

	vacationService := services.NewVacationService(resolver, provider, store, environment.GetPlannerMaxConcurrency(), logger)

	if !environment.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandlerMiddleware(logger))

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	v1.RegisterRoutes(r,
		controllers.NewVacationController(vacationService),
		verifier,
		middleware.NewRateLimiter(environment.GetPlanRatePerMinute()))

	srv := &http.Server{
		Addr:    ":" + environment.GetPort(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
