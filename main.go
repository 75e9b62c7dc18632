package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-awesome/components/orm"
	"github.com/go-awesome/logging"
	_ "github.com/go-awesome/models"
	"github.com/go-awesome/routers"
	"github.com/go-awesome/setting"
)

type Configuration struct {
	ConfigPath string
	InitSchema bool
}

func main() {
	config := parseArguments()

	cfg, err := setting.Load(config.ConfigPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.App.RunMode)

	pool, err := orm.CreatePool(poolConfig(cfg.Database))
	if err != nil {
		logging.Fatal().Err(err).Msg("create database pool")
	}
	defer closePool(pool)

	if config.InitSchema {
		if err := initSchema(pool); err != nil {
			logging.Error().Err(err).Msg("init schema")
		}
		return
	}

	app, err := routers.InitRouter(pool, cfg.Template)
	if err != nil {
		logging.Error().Err(err).Msg("init router")
		return
	}
	serve(app, cfg.Server)
}

func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.ConfigPath, "c", "conf/app.ini", "Config file path")
	flag.BoolVar(&config.InitSchema, "init-schema", false, "Create the tables of all models and exit")

	flag.Parse()

	return config
}

func poolConfig(db setting.Database) orm.PoolConfig {
	return orm.PoolConfig{
		Host:       db.Host,
		Port:       db.Port,
		User:       db.User,
		Password:   db.Password,
		Db:         db.Db,
		Charset:    db.Charset,
		Autocommit: db.Autocommit,
		MaxSize:    db.MaxSize,
		MinSize:    db.MinSize,
		LogSQL:     db.LogSQL,
	}
}

func initSchema(pool *orm.Pool) error {
	ctx := context.Background()
	for _, s := range orm.Schemas() {
		logging.Info().Str("model", s.Name()).Str("table", s.Table()).Msg("create table")
		if _, err := pool.Execute(ctx, s.CreateTableSQL(), nil); err != nil {
			return err
		}
	}
	return nil
}

func serve(handler http.Handler, c setting.Server) {
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", c.Host, c.HttpPort),
		Handler:        handler,
		ReadTimeout:    c.ReadTimeout,
		WriteTimeout:   c.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logging.Info().Msgf("server started at http://%s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}
}

func closePool(pool *orm.Pool) {
	logging.Info().Msg("close database connection pool")
	if err := pool.Close(); err != nil {
		logging.Warn().Err(err).Msg("close pool")
	}
}
