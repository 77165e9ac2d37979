package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radcase-engine/internal/app"
	"radcase-engine/internal/config"
	"radcase-engine/internal/domain"
	"radcase-engine/internal/infra/memory"
	pgloader "radcase-engine/internal/infra/postgres"
	redisinfra "radcase-engine/internal/infra/redis"
	transport "radcase-engine/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the attempt engine server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	staticContent := memory.NewStaticContentLoader(sampleCases(), sampleEvents())
	var caseLoader memory.CaseLoader = staticContent
	var events app.EventRepository = memory.NewEventRepository(staticContent)
	if pool != nil {
		loader := pgloader.NewContentLoader(pool)
		caseLoader = loader
		events = loader
	}

	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	var cases app.CaseRepository
	if redisClient != nil {
		cases = redisinfra.NewCaseRepository(redisClient, caseLoader, contentTTL)
	} else {
		cases = memory.NewCaseRepository(caseLoader, contentTTL)
	}

	var sessions app.SessionRepository
	var reviews app.ReviewStatusProvider
	var attempts app.AttemptSink
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL)
		store := redisinfra.NewAttemptStore(redisClient)
		reviews = store
		attempts = store
	} else {
		sessions = memory.NewSessionStore()
		store := memory.NewAttemptStore()
		reviews = store
		attempts = store
	}

	service := app.NewAttemptService(sessions, cases, events, reviews, attempts)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting attempt engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCases provides a minimal content set; swap the loader for the
// Postgres-backed one in production.
func sampleCases() map[string]domain.Case {
	return map[string]domain.Case{
		"case-1": {
			ID:     "case-1",
			Prompt: "35-year-old with productive cough and right lower lobe consolidation on chest X-ray. Most likely diagnosis?",
			AnswerOptions: []string{
				"Pneumonia",
				"Tuberculose",
				"Pulmonary embolism",
				"Asthma",
			},
			CorrectIndex: 0,
			BasePoints:   10,
		},
	}
}

func sampleEvents() map[string]domain.Event {
	return map[string]domain.Event{
		"event-1": {
			ID:      "event-1",
			Seed:    "event-1",
			CaseIDs: []string{"case-1"},
		},
	}
}
