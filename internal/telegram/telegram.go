package telegram

import (
	"context"
	"fmt"
	"time"

	"relay_bot/internal/config"
	"relay_bot/internal/fetcher"
	"relay_bot/internal/logger"
	"relay_bot/internal/pipeline"
	"relay_bot/internal/platform"

	"github.com/go-telegram/bot"
)

// Config Telegram Bot 配置
type Config struct {
	Token     string // Bot Token
	Workers   int    // 下载任务 worker 数量
	QueueSize int    // 下载任务队列长度
	Debug     bool   // 是否开启调试模式
}

// Bot Telegram Bot 服务
type Bot struct {
	bot       *bot.Bot
	matcher   *platform.Matcher
	pipeline  *pipeline.Pipeline
	chat      pipeline.Messenger
	pool      *WorkerPool
	startTime time.Time
}

// New 创建 Telegram Bot 实例
func New(cfg Config, f fetcher.Fetcher) (*Bot, error) {
	// 验证配置
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}

	telegramBot := &Bot{
		matcher:   platform.NewMatcher(),
		startTime: time.Now(),
	}

	// 创建 bot 实例，未注册命令之外的纯文本消息走 handleMessage
	opts := []bot.Option{
		bot.WithDefaultHandler(telegramBot.safeHandler(telegramBot.handleMessage)),
	}
	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	telegramBot.bot = b
	telegramBot.chat = newChatMessenger(b)
	telegramBot.pipeline = pipeline.New(f, telegramBot.chat)
	telegramBot.pool = NewWorkerPool(telegramBot.pipeline, telegramBot.chat, cfg.Workers, cfg.QueueSize)

	// 注册 handlers
	telegramBot.registerHandlers()

	logger.L().Info("Telegram bot initialized successfully")
	return telegramBot, nil
}

// InitFromConfig 从应用配置初始化 Telegram Bot
func InitFromConfig(cfg *config.Config) (*Bot, error) {
	f := fetcher.NewYtDlp(fetcher.Config{
		Dir:        cfg.DownloadDir,
		MaxSizeMB:  cfg.MaxFileSizeMB,
		BinaryPath: cfg.YtDlpPath,
	})

	telegramCfg := Config{
		Token:     cfg.TelegramToken,
		Workers:   cfg.WorkerCount,
		QueueSize: cfg.QueueSize,
		Debug:     false, // 可根据需要从环境变量读取
	}
	return New(telegramCfg, f)
}

// Start 启动 Bot（阻塞式，应在 goroutine 中运行或作为主循环）
func (b *Bot) Start(ctx context.Context) error {
	logger.L().Info("Starting Telegram bot...")
	b.bot.Start(ctx)
	logger.L().Info("Telegram bot stopped")
	return nil
}

// Shutdown 等待进行中的下载任务结束
func (b *Bot) Shutdown() {
	b.pool.Shutdown()
}
