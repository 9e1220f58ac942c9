package app

import (
	"context"
	"fmt"

	"relay_bot/internal/config"
	"relay_bot/internal/health"
	"relay_bot/internal/logger"
	"relay_bot/internal/telegram"
)

// App 应用服务容器
// 负责管理所有服务的生命周期（初始化、运行、关闭）
type App struct {
	Bot    *telegram.Bot
	Health *health.Server
}

// New 初始化应用及其所有服务
func New(cfg *config.Config) (*App, error) {
	app := &App{}

	telegramBot, err := telegram.InitFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init Telegram bot failed: %w", err)
	}
	app.Bot = telegramBot

	app.Health = health.New(cfg.HealthAddr)

	return app, nil
}

// Run 启动所有服务并阻塞到 ctx 取消
// 存活探针运行在独立的 goroutine 中，与 bot 之间没有共享状态
func (a *App) Run(ctx context.Context) error {
	go a.Health.Start(ctx)
	return a.Bot.Start(ctx)
}

// Close 优雅关闭所有服务
// 应该在应用退出时调用，确保进行中的下载任务完成
func (a *App) Close(ctx context.Context) error {
	if a.Bot != nil {
		a.Bot.Shutdown()
	}
	logger.L().Info("Application closed")
	return nil
}
