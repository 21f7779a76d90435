package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mikolajradlinski-prog/stand-dashboard/config"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/api/handler"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/api/middleware"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/api/router"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/repository"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/service"
	"github.com/mikolajradlinski-prog/stand-dashboard/internal/snapshot"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/database"
	applogger "github.com/mikolajradlinski-prog/stand-dashboard/pkg/logger"
	"github.com/mikolajradlinski-prog/stand-dashboard/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("STAND_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("source", cfg.Source.Mode),
		zap.String("location", cfg.Source.Location),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 快照来源
	var (
		provider snapshot.Provider
		db       *gorm.DB
	)
	switch cfg.Source.Mode {
	case config.SourceModeMock:
		provider = snapshot.NewMockProvider()
	case config.SourceModeDatabase:
		db, err = database.NewDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		provider = snapshot.NewDatabaseProvider(repository.NewRepository(db))
	default:
		provider = snapshot.NewRemoteProvider(cfg.Source.URL, cfg.Source.Timeout)
	}

	// 4. 连接 Redis（可选：未配置或连接失败时不缓存快照、不限流）
	var (
		rdb     *redis.Client
		limiter middleware.RateLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，快照缓存与限流将不可用", zap.Error(err))
			rdb = nil
		}
	}
	if rdb != nil {
		provider = snapshot.NewCachedProvider(provider, rdb, cfg.Redis.SnapshotTTL, logger)
		limiter = rdb
	}

	// 5. 快照存储与后台刷新
	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(provider, store, cfg.Source.RefreshInterval, logger)

	runCtx, stopRefresh := context.WithCancel(context.Background())
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		refresher.Run(runCtx)
	}()

	// 6. 依赖注入: Snapshot → Service → Handler
	svc, err := service.NewService(cfg, store, refresher, logger)
	if err != nil {
		logger.Fatal("初始化服务失败", zap.Error(err))
	}
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, limiter, func() bool { return store.Current() != nil }, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	stopRefresh()
	<-refreshDone

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
