package app

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/config"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/migrations"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

type App struct {
	cfg    config.Config
	log    zerolog.Logger
	db     *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := openDB(cfg.DB)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err := runMigrations(db, cfg.DB.Driver()); err != nil {
		db.Close()
		return nil, err
	}

	a.redis = newRedis(cfg.Redis, log)

	a.router = newRouter(cfg, log, a.db, a.redis)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	return nil
}

func openDB(cfg config.DBConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error
	switch cfg.Driver() {
	case "postgres":
		db, err = sql.Open("pgx", cfg.URL)
	default:
		db, err = sql.Open("sqlite", cfg.SQLiteDSN())
	}
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	// Serverless-friendly pool: never retain idle connections between
	// requests.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// newRedis builds the shared cache client, or nil when no REDIS_URL is
// configured. An unreachable backend is only logged: every cache call
// degrades independently, so startup must not depend on Redis.
func newRedis(cfg config.RedisConfig, log zerolog.Logger) *redis.Client {
	if !cfg.Enabled() {
		log.Info().Msg("REDIS_URL not set, task cache disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		// Managed Redis offerings the service deploys against only
		// accept TLS connections.
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, cache will degrade per call")
	}
	return rdb
}

func runMigrations(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations.Embed)

	dialect, dir := "postgres", "postgres"
	if driver != "postgres" {
		dialect, dir = "sqlite3", "sqlite"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, log zerolog.Logger, db *sql.DB, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, log, db, rdb)
	return r
}
