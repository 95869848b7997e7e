// Package bootstrap opens the store selected by configuration and builds the
// services shared by the HTTP server and the function consumer.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/interviewqa/apiserver/config"
	"github.com/interviewqa/apiserver/internal/auth"
	"github.com/interviewqa/apiserver/internal/db"
	"github.com/interviewqa/apiserver/internal/services"
	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/internal/store/memory"
	"github.com/interviewqa/apiserver/internal/store/mongodb"
)

// App holds the services and the resources backing them.
type App struct {
	Jobs      *services.JobService
	SubJobs   *services.SubJobService
	Questions *services.QuestionService
	Auth      *services.AuthService

	closers []func(context.Context) error
}

// New opens the configured store and wires the services on top of it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{}
	repos, err := app.openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("store ready", "backend", cfg.StoreBackend)

	app.Jobs = services.NewJobService(repos.Jobs)
	app.SubJobs = services.NewSubJobService(repos.SubJobs)
	app.Questions = services.NewQuestionService(repos)
	app.Auth = services.NewAuthService(repos, auth.NewTokenManager(cfg.JWTSecret, auth.DefaultTokenTTL))
	return app, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config) (services.Repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		// Connects lazily on first use.
		conn := mongodb.NewConnector(cfg.Mongo.URI, cfg.Mongo.Database)
		a.closers = append(a.closers, conn.Close)
		return services.Repositories{
			Jobs:      mongodb.NewJobRepository(conn),
			SubJobs:   mongodb.NewSubJobRepository(conn),
			Questions: mongodb.NewQuestionRepository(conn),
			Users:     mongodb.NewUserRepository(conn),
		}, nil
	case config.StorePostgres:
		dbConn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return services.Repositories{}, fmt.Errorf("open postgres: %w", err)
		}
		a.closers = append(a.closers, closeDB(dbConn))
		return services.Repositories{
			Jobs:      store.NewJobRepository(dbConn),
			SubJobs:   store.NewSubJobRepository(dbConn),
			Questions: store.NewQuestionRepository(dbConn),
			Users:     store.NewUserRepository(dbConn),
		}, nil
	case config.StoreMemory:
		st := memory.NewStore()
		return services.Repositories{
			Jobs:      st.Jobs(),
			SubJobs:   st.SubJobs(),
			Questions: st.Questions(),
			Users:     st.Users(),
		}, nil
	default:
		return services.Repositories{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func closeDB(dbConn *sql.DB) func(context.Context) error {
	return func(context.Context) error {
		return dbConn.Close()
	}
}
