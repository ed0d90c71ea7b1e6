package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/generator"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/feedclient"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("main: invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("main: log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var salesRepo repository.SalesRecordRepository
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		salesRepo = repository.NewSalesRecordRepository(pgConn)
	}

	datasetService := dataset.NewService(recordSource(cfg, salesRepo))
	if cfg.Dataset.Persist && cfg.Dataset.Source != config.SourcePostgres {
		datasetService.WithPersistence(salesRepo)
	}

	// A primeira carga é síncrona; se falhar, a API sobe e responde 503 até a próxima recarga
	if _, err := datasetService.Refresh(ctx); err != nil {
		logrus.WithError(err).Error("main: initial dataset load failed")
	}

	dashboardService := dashboarding.NewService(datasetService, cfg)
	authenticator := authenticating.NewService(cfg.Auth)

	datasetRefreshService := scheduler.NewDatasetRefreshService(datasetService, cfg)
	if err := datasetRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: failed to start dataset refresh scheduler")
	} else {
		logrus.Info("main: dataset refresh scheduler started")
	}

	sessionCleanupService := scheduler.NewSessionCleanupService(dashboardService, cfg)
	if err := sessionCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("main: failed to start session cleanup scheduler")
	}

	server, err := api.New(
		cfg,
		datasetService,
		dashboardService,
		authenticator,
		datasetRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// recordSource escolhe a origem dos registros conforme DATASET_SOURCE
func recordSource(cfg *config.Config, salesRepo repository.SalesRecordRepository) dataset.RecordSource {
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		return dataset.NewStoreSource(salesRepo, cfg.Dataset.Days)
	case config.SourceFeed:
		return salesfeed.New(feedclient.NewClient(cfg.SalesFeed), cfg.Dataset.Days)
	default:
		return generator.New(cfg.Dataset.Days, cfg.Dataset.Seed)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("main: failed to connect to postgres")
	}

	logrus.Info("main: postgres connection established")
	return conn
}
