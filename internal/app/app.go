// Package app wires configuration, storage and services shared by the
// server and the command line tools.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worktime-stats/internal/config"
	domainStats "github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-stats/internal/repository/mongodb"
	"github.com/cmlabs-hris/worktime-stats/internal/repository/postgresql"
	statsService "github.com/cmlabs-hris/worktime-stats/internal/service/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/service/worktime"
)

type App struct {
	DB           *database.DB
	Mongo        *database.MongoDB
	StatsService domainStats.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Stats.Concurrency) + 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a := &App{DB: db}

	var statsRepo domainStats.Repository
	switch cfg.Stats.Store {
	case config.StoreBackendMongoDB:
		a.Mongo, err = database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Name, uint64(cfg.Stats.Concurrency)+5)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		statsRepo, err = mongodb.NewMonthlyStatsRepository(ctx, a.Mongo)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
	default:
		statsRepo = postgresql.NewMonthlyStatsRepository(db)
	}
	slog.Info("Stats store selected", "store", cfg.Stats.Store)

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	aggregator := statsService.NewAggregator(worktime.NewClassifier())
	a.StatsService = statsService.NewStatsService(attendanceRepo, statsRepo, aggregator, cfg.Stats.Concurrency)

	return a, nil
}

func (a *App) Close(ctx context.Context) {
	if a.Mongo != nil {
		if err := a.Mongo.Close(ctx); err != nil {
			slog.Warn("Failed to close mongodb client", "error", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
