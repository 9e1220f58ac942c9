package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 应用程序配置
type Config struct {
	TelegramToken string // Telegram Bot API Token
	DownloadDir   string // 下载文件的临时目录
	MaxFileSizeMB int    // 单个附件的最大体积（MB），受 Telegram 上传限制约束
	HealthAddr    string // 存活探针 HTTP 监听地址
	YtDlpPath     string // yt-dlp 可执行文件路径（留空则使用 PATH 中的 yt-dlp）
	WorkerCount   int    // 下载任务 worker 数量
	QueueSize     int    // 下载任务队列长度
}

// Load 从环境变量加载配置
// TELEGRAM_BOT_TOKEN 是唯一的必填项，缺失时返回错误
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		DownloadDir:   "downloads",
		MaxFileSizeMB: 50,
		HealthAddr:    ":8080",
		YtDlpPath:     strings.TrimSpace(os.Getenv("YTDLP_PATH")),
		WorkerCount:   4,
		QueueSize:     64,
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	if dir := strings.TrimSpace(os.Getenv("DOWNLOAD_DIR")); dir != "" {
		cfg.DownloadDir = dir
	}

	if addr := strings.TrimSpace(os.Getenv("HEALTH_ADDR")); addr != "" {
		cfg.HealthAddr = addr
	}

	if err := parsePositiveInt("MAX_FILE_SIZE_MB", &cfg.MaxFileSizeMB); err != nil {
		return nil, err
	}
	if err := parsePositiveInt("WORKER_COUNT", &cfg.WorkerCount); err != nil {
		return nil, err
	}
	if err := parsePositiveInt("QUEUE_SIZE", &cfg.QueueSize); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parsePositiveInt 解析正整数环境变量，未设置时保留 dst 的默认值
func parsePositiveInt(name string, dst *int) error {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if v < 1 {
		return fmt.Errorf("%s must be >= 1, got %d", name, v)
	}

	*dst = v
	return nil
}
