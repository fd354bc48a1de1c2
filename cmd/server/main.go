package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/config"
	"github.com/gdg-garage/conference-api/internal/database"
	"github.com/gdg-garage/conference-api/internal/events"
	"github.com/gdg-garage/conference-api/internal/handlers"
	"github.com/gdg-garage/conference-api/internal/lock"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/notifier"
	"github.com/gdg-garage/conference-api/internal/service"
	"github.com/gdg-garage/conference-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	// Connect to Database
	db := database.Connect(cfg)
	st := store.New(db)

	// Owner lock: Redis when configured, in-process otherwise
	var locker lock.Locker = lock.NewLocal()
	redisClient, err := config.NewRedisClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedis(redisClient, cfg.LockTTL, cfg.LockWait)
		logger.Info("using redis owner lock", "addr", cfg.RedisAddr)
	}

	// Notifications
	var notifiers notifier.Multi
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("Discord notifier not initialized", "error", err)
		} else {
			notifiers = append(notifiers, notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID))
		}
	}
	if cfg.AMQPURL != "" {
		notifiers = append(notifiers, events.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue))
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, st)
	profiles := service.NewProfileManager(st)
	conferences := service.NewConferenceManager(st, profiles)
	engine := service.NewReservationEngine(st, profiles, locker)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:        authHandler,
		Profile:     handlers.NewProfileHandler(authHandler, profiles),
		Conference:  handlers.NewConferenceHandler(authHandler, profiles, conferences, notifiers),
		Reservation: handlers.NewReservationHandler(authHandler, profiles, engine, notifiers),
		APIKey:      handlers.NewAPIKeyHandler(st, profiles, authHandler),
		Logger:      logger,
	})

	// Start Server
	logger.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
