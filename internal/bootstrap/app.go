package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/analyses"
	"github.com/Bridgette013/Truthseeker/internal/cases"
	"github.com/Bridgette013/Truthseeker/internal/evidence"
	"github.com/Bridgette013/Truthseeker/internal/gateway"
	"github.com/Bridgette013/Truthseeker/internal/gateway/gemini"
	"github.com/Bridgette013/Truthseeker/internal/journal"
	"github.com/Bridgette013/Truthseeker/internal/session"
	"github.com/Bridgette013/Truthseeker/internal/shared/config"
	"github.com/Bridgette013/Truthseeker/internal/shared/server"
	"github.com/Bridgette013/Truthseeker/internal/shared/storage/db"
	"github.com/Bridgette013/Truthseeker/internal/shared/storage/object"
	localstore "github.com/Bridgette013/Truthseeker/internal/shared/storage/object/local"
	s3store "github.com/Bridgette013/Truthseeker/internal/shared/storage/object/s3"
	"github.com/Bridgette013/Truthseeker/internal/transcripts"
	"github.com/Bridgette013/Truthseeker/internal/usage"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Gateway    gateway.Client
	Controller *session.Controller

	CasesRepo   cases.Repo
	JournalRepo journal.Repo

	CasesService      *cases.Service
	JournalService    *journal.Service
	UsageService      *usage.Service
	AnalysesService   *analyses.Service
	TranscriptService *transcripts.Service

	AnalysisHandler   *analyses.Handler
	TranscriptHandler *transcripts.Handler
	CaseHandler       *cases.Handler
	JournalHandler    *journal.Handler
	EvidenceHandler   *evidence.Handler
	UsageHandler      *usage.Handler
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gw, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		ProModel:   cfg.ProModel,
		FlashModel: cfg.FlashModel,
		ImageModel: cfg.ImageModel,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: gemini client: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Gateway: gw,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		AnalysisHandler:   app.AnalysisHandler,
		TranscriptHandler: app.TranscriptHandler,
		CaseHandler:       app.CaseHandler,
		JournalHandler:    app.JournalHandler,
		EvidenceHandler:   app.EvidenceHandler,
		UsageHandler:      app.UsageHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var caseRepo cases.Repo
	var journalRepo journal.Repo
	var usageSvc *usage.Service

	if app.DB != nil {
		caseRepo = &cases.PGRepo{DB: app.DB}
		journalRepo = &journal.PGRepo{DB: app.DB}
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB, app.Config.DailyScanLimit))
	} else {
		caseRepo = cases.NewMemoryRepo()
		journalRepo = journal.NewMemoryRepo()
		usageSvc = usage.NewService(app.Config.DailyScanLimit)
	}

	caseSvc := cases.NewService(caseRepo)
	journalSvc := journal.NewService(journalRepo)
	transcriptSvc := transcripts.NewService(app.Store)

	app.Controller = session.NewController(app.Gateway)
	analysisSvc := analyses.NewService(app.Controller, caseSvc, usageSvc)
	analysisSvc.Store = app.Store

	app.CasesRepo = caseRepo
	app.JournalRepo = journalRepo
	app.CasesService = caseSvc
	app.JournalService = journalSvc
	app.UsageService = usageSvc
	app.AnalysesService = analysisSvc
	app.TranscriptService = transcriptSvc
	app.AnalysisHandler = analyses.NewHandler(analysisSvc)
	app.TranscriptHandler = transcripts.NewHandler(transcriptSvc)
	app.CaseHandler = cases.NewHandler(caseSvc)
	app.JournalHandler = journal.NewHandler(journalSvc)
	app.EvidenceHandler = evidence.NewHandler(caseSvc, journalSvc, app.Store)
	app.UsageHandler = usage.NewHandler(usageSvc)
}
