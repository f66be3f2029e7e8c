package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/titanhub-backend/internal/clients/openai"
	"github.com/yungbote/titanhub-backend/internal/clients/sheets"
	"github.com/yungbote/titanhub-backend/internal/demo"
	"github.com/yungbote/titanhub-backend/internal/handlers"
	"github.com/yungbote/titanhub-backend/internal/ingestion"
	"github.com/yungbote/titanhub-backend/internal/jobs"
	"github.com/yungbote/titanhub-backend/internal/observability"
	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
	"github.com/yungbote/titanhub-backend/internal/server"
	"github.com/yungbote/titanhub-backend/internal/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Router   *gin.Engine
	Services Services
	Poller   *jobs.Poller

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

type Services struct {
	Sync      *services.SyncService
	Assistant *services.AssistantService
	Sessions  *services.SessionService
}

type Handlers struct {
	Session   *handlers.SessionHandler
	Dashboard *handlers.DashboardHandler
	Sync      *handlers.SyncHandler
	Assistant *handlers.AssistantHandler
}

func New() (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "titanhub",
		Environment: cfg.LogMode,
	})

	serviceset, err := wireServices(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	router := server.NewRouter(server.RouterConfig{
		ServiceName:      "titanhub",
		AllowOrigins:     cfg.AllowOrigins,
		SessionHandler:   handlerset.Session,
		DashboardHandler: handlerset.Dashboard,
		SyncHandler:      handlerset.Sync,
		AssistantHandler: handlerset.Assistant,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Router:       router,
		Services:     serviceset,
		Poller:       jobs.NewPoller(log, serviceset.Sync, cfg.PollInterval),
		otelShutdown: otelShutdown,
	}, nil
}

func wireServices(log *logger.Logger, cfg Config) (Services, error) {
	log.Info("Wiring services...")

	headers := ingestion.NewHeaderMap()
	if cfg.SynonymsFile != "" {
		if err := headers.LoadOverrides(cfg.SynonymsFile); err != nil {
			log.Warn("Failed to load header synonym overrides", "path", cfg.SynonymsFile, "error", err)
		}
	}

	var sheetsClient sheets.Client
	if cfg.SheetID != "" {
		client, err := sheets.NewClient(log, cfg.SheetsBaseURL, cfg.SheetID)
		if err != nil {
			return Services{}, fmt.Errorf("init sheets client: %w", err)
		}
		sheetsClient = client
	} else {
		log.Warn("SHEET_ID not set; sheet sync disabled")
	}

	syncService := services.NewSyncService(log, sheetsClient, headers, cfg.TabGIDs, cfg.TopN)

	var model openai.Client
	if client, err := openai.NewClient(log); err != nil {
		log.Warn("Assistant model unavailable", "error", err)
	} else {
		model = client
	}

	return Services{
		Sync:      syncService,
		Assistant: services.NewAssistantService(log, model, syncService),
		Sessions:  services.NewSessionService(log),
	}, nil
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Session:   handlers.NewSessionHandler(log, serviceset.Sessions),
		Dashboard: handlers.NewDashboardHandler(log, serviceset.Sync),
		Sync:      handlers.NewSyncHandler(log, serviceset.Sync),
		Assistant: handlers.NewAssistantHandler(log, serviceset.Assistant),
	}
}

// Start runs the initial sheet sync and launches the background poller.
// Without a configured sheet the dashboard starts on generated demo data.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Cfg.SheetID == "" {
		if a.Cfg.DemoFallback {
			a.Services.Sync.LoadDemo(demo.Generate(250, 1))
		}
		return
	}

	if err := a.Services.Sync.Refresh(ctx, true); err != nil {
		a.Log.Error("Initial sync failed", "error", err)
		if a.Cfg.DemoFallback && len(a.Services.Sync.Records()) == 0 {
			a.Log.Warn("Falling back to demo data")
			a.Services.Sync.LoadDemo(demo.Generate(250, 1))
		}
	}
	a.Poller.Start(ctx)
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
