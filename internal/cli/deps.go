package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sithvalentine/wealth-builder-mvp/internal/app"
	"github.com/sithvalentine/wealth-builder-mvp/internal/config"
	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/infra/memory"
	pgloader "github.com/sithvalentine/wealth-builder-mvp/internal/infra/postgres"
	infraredis "github.com/sithvalentine/wealth-builder-mvp/internal/infra/redis"
	"github.com/sithvalentine/wealth-builder-mvp/internal/infra/sqlstore"
	"github.com/sithvalentine/wealth-builder-mvp/internal/logger"
	"github.com/sithvalentine/wealth-builder-mvp/internal/seed"
)

// repositories is everything a store driver must provide.
type repositories interface {
	app.AttemptRepository
	app.GradeRepository
	app.RosterRepository
	app.BudgetRepository
	app.WealthRepository
}

// quizSource loads quizzes for the cache and accepts seeded ones.
type quizSource interface {
	memory.QuizLoader
	seed.QuizSaver
}

// services is the wired application for one CLI invocation.
type services struct {
	log       *logger.Logger
	driver    string
	quizzes   quizSource
	quiz      *app.QuizService
	gradebook *app.GradebookService
	budget    *app.BudgetService
	wealth    *app.WealthService
	closers   []func() error
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("close resource", "error", err)
		}
	}
	s.log.Sync()
}

func setup(ctx context.Context, configPath string) (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	s := &services{log: log, driver: cfg.Store.Driver}

	var repos repositories
	switch cfg.Store.Driver {
	case "memory":
		quizzes, err := seed.QuizMap()
		if err != nil {
			return nil, err
		}
		repos = memory.NewStore()
		s.quizzes = memory.NewStaticQuizLoader(quizzes)
	case sqlstore.DriverSQLite, sqlstore.DriverPostgres:
		store, err := sqlstore.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		repos = store
		s.quizzes = store
		if cfg.Store.Driver == sqlstore.DriverPostgres {
			pool, err := pgxpool.Connect(ctx, cfg.Store.DSN)
			if err != nil {
				s.Close()
				return nil, fmt.Errorf("connect postgres: %w", err)
			}
			s.closers = append(s.closers, func() error { pool.Close(); return nil })
			s.quizzes = pgloader.NewQuizLoader(pool)
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	log.Debug("store ready", "driver", cfg.Store.Driver)

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	lockTTL := config.TTLDuration(cfg.Quiz.LockTTL, 30*time.Second)
	var quizRepo app.QuizRepository
	var lock app.SubmissionLock
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s.closers = append(s.closers, client.Close)
		quizRepo = infraredis.NewQuizRepository(client, s.quizzes, quizTTL)
		lock = infraredis.NewSubmissionLock(client, lockTTL)
	} else {
		quizRepo = memory.NewQuizRepository(s.quizzes, quizTTL)
		lock = memory.NewSubmissionLock()
	}

	s.quiz = app.NewQuizService(quizRepo, repos, repos, lock, log)
	s.gradebook = app.NewGradebookService(repos, repos, cfg.Grading.DefaultWeights.Domain(), log)
	s.budget = app.NewBudgetService(repos, repos, log)
	s.wealth = app.NewWealthService(repos, repos, log)
	return s, nil
}

// withServices wires the application, runs fn and tears everything down.
func withServices(ctx context.Context, configPath string, fn func(*services) error) error {
	s, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// errEphemeralStore is returned by commands that read state written by an
// earlier invocation.
var errEphemeralStore = errors.New("the memory store driver keeps nothing between commands; configure sqlite or postgres")

// withStoredServices is withServices for commands that depend on earlier
// invocations, which the memory driver cannot serve.
func withStoredServices(ctx context.Context, configPath string, fn func(*services) error) error {
	return withServices(ctx, configPath, func(s *services) error {
		if s.driver == "memory" {
			return errEphemeralStore
		}
		return fn(s)
	})
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseAnswers converts decoded YAML/JSON values keyed by question id.
func parseAnswers(raw map[string]interface{}) (map[string]domain.Answer, error) {
	answers := make(map[string]domain.Answer, len(raw))
	for questionID, v := range raw {
		a, err := domain.AnswerFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", questionID, err)
		}
		answers[questionID] = a
	}
	return answers, nil
}
