// @title CEMSE 学习平台 API
// @version 1.0
// @description 测验评分与学习进度服务

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"cemse_backend/internal/app"
	"cemse_backend/internal/config"
	"cemse_backend/pkg/configwatcher"
	"cemse_backend/pkg/logger"
	"context"
	"flag"
	"log"

	"go.uber.org/zap"
)

const configDir = "configs"

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		application.Close(context.Background())
		return
	}

	stop := make(chan struct{})
	defer close(stop)
	if err := configwatcher.WatchConfig(configDir, application.ReloadConfig, stop); err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}

	application.Run()
}
