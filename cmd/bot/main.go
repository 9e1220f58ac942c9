package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"relay_bot/internal/app"
	"relay_bot/internal/config"
	"relay_bot/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env 文件是可选的，生产环境直接注入环境变量
	_ = godotenv.Load()

	// 初始化logger
	logger.Init()

	// 加载配置，缺少 bot token 时直接退出
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		logger.L().Fatalf("Failed to initialize application: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		logger.L().Errorf("Application stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		logger.L().Errorf("Failed to close application: %v", err)
	}
}
