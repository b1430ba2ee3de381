package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"cie-backend/internal/applications"
	"cie-backend/internal/auth"
	"cie-backend/internal/feedback"
	"cie-backend/internal/internships"
	"cie-backend/internal/locations"
	"cie-backend/internal/projects"
	"cie-backend/internal/queue"
	"cie-backend/internal/server"
	"cie-backend/internal/services/health"
	"cie-backend/internal/shared/config"
	"cie-backend/internal/shared/storage/db"
	"cie-backend/internal/shared/storage/object"
	"cie-backend/internal/shared/storage/object/local"
	"cie-backend/internal/shared/storage/object/s3"
	"cie-backend/internal/shared/telemetry"
	"cie-backend/internal/shortlist"
	"cie-backend/internal/uploads"
	"cie-backend/internal/users"
)

// App holds the wired application.
type App struct {
	Cfg    config.Config
	Engine *gin.Engine
	DB     *sql.DB
}

// Build wires repositories, services, and handlers from configuration.
// Without DATABASE_URL the app runs on in-memory repositories, which is how
// local development and most tests operate.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		dbConn        *sql.DB
		usersRepo     users.Repo
		internRepo    internships.Repo
		appsRepo      applications.Repo
		projectsRepo  projects.Repo
		feedbackRepo  feedback.Repo
		locationsRepo locations.Repo
	)

	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		dbConn = conn
		usersRepo = &users.PGRepo{DB: conn}
		internRepo = &internships.PGRepo{DB: conn}
		appsRepo = &applications.PGRepo{DB: conn}
		projectsRepo = &projects.PGRepo{DB: conn}
		feedbackRepo = &feedback.PGRepo{DB: conn}
		locationsRepo = &locations.PGRepo{DB: conn}
	} else {
		usersRepo = users.NewMemoryRepo()
		internRepo = internships.NewMemoryRepo()
		appsRepo = applications.NewMemoryRepo()
		projectsRepo = projects.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
		locationsRepo = locations.NewMemoryRepo()
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if shortlistStorageMismatch(cfg) {
		telemetry.Warn("bootstrap.shortlist_storage_mismatch", map[string]any{
			"object_store":     cfg.ObjectStoreType,
			"applications_dir": cfg.ApplicationsDir,
		})
	}

	usersSvc := users.NewService(usersRepo)
	internSvc := &internships.Service{Repo: internRepo, Users: usersSvc, Store: store}
	appsSvc := &applications.Service{Repo: appsRepo, Users: usersSvc, Internships: internSvc}
	projectsSvc := &projects.Service{Repo: projectsRepo, Users: usersSvc}
	feedbackSvc := &feedback.Service{Repo: feedbackRepo, Users: usersSvc}
	locationsSvc := &locations.Service{Repo: locationsRepo, Users: usersSvc}

	shortlistSvc := &shortlist.Service{
		Users:           usersSvc,
		Projects:        projectsRepo,
		Runner:          shortlist.NewPythonRunner(cfg.ScriptsDir, cfg.PythonPath, cfg.ShortlistTimeout),
		Queue:           buildQueue(ctx, cfg),
		APIKey:          cfg.MistralAPIKey,
		ApplicationsDir: cfg.ApplicationsDir,
		Workers:         cfg.ShortlistWorkers,
	}

	var google *auth.GoogleService
	if cfg.GoogleClientID != "" {
		google = auth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, usersSvc)
	}

	engine := server.NewEngine(cfg, server.Handlers{
		Health:       health.NewService(),
		Google:       google,
		Users:        users.NewHandler(usersSvc),
		Internships:  internships.NewHandler(internSvc),
		Applications: applications.NewHandler(appsSvc),
		Projects:     projects.NewHandler(projectsSvc),
		Feedback:     feedback.NewHandler(feedbackSvc),
		Locations:    locations.NewHandler(locationsSvc),
		Uploads:      uploads.NewHandler(store, usersSvc),
		Shortlist:    shortlist.NewHandler(shortlistSvc),
	})

	return &App{Cfg: cfg, Engine: engine, DB: dbConn}, nil
}

// shortlistStorageMismatch reports whether shortlist runs are enabled while
// resumes are uploaded somewhere the ranking tool cannot read. The tool scans
// ApplicationsDir on local disk, so with an S3-backed object store every run
// fails its resume-folder precondition unless the bucket is synced to disk.
func shortlistStorageMismatch(cfg config.Config) bool {
	return cfg.MistralAPIKey != "" && cfg.ObjectStoreType == "s3"
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil
	}
	return local.New(cfg.LocalStoreDir), nil
}

// buildQueue returns nil when no backend is configured; shortlist events are
// then simply not published.
func buildQueue(ctx context.Context, cfg config.Config) queue.Client {
	switch cfg.QueueBackend {
	case "sqs":
		client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
		if err != nil {
			telemetry.Warn("bootstrap.queue_disabled", map[string]any{"backend": "sqs", "error": err.Error()})
			return nil
		}
		return client
	case "rabbitmq", "rabbit":
		client, err := queue.NewRabbitClient(cfg.RabbitURL, "shortlist-events")
		if err != nil {
			telemetry.Warn("bootstrap.queue_disabled", map[string]any{"backend": "rabbitmq", "error": err.Error()})
			return nil
		}
		return client
	default:
		return nil
	}
}
