package telegram

import (
	"context"
	"strings"

	"relay_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

const startMessage = "Hi! Send me a TikTok, Instagram, Twitter/X, or Tumblr link, and I'll convert it into an attachment."

// registerHandlers 注册所有命令处理器
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact,
		b.safeHandler(b.handleStart))
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ping", bot.MatchTypeExact,
		b.safeHandler(b.handlePing))

	logger.L().Debug("All handlers registered")
}

// handleStart 处理 /start 命令
func (b *Bot) handleStart(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	logger.L().Debug("Received /start command")
	b.sendMessage(ctx, update.Message.Chat.ID, startMessage)
}

// handlePing 处理 /ping 命令
func (b *Bot) handlePing(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID, b.buildPingMessage(ctx))
}

// handleMessage 处理普通文本消息：扫描平台链接并逐个提交下载任务
func (b *Bot) handleMessage(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	text := update.Message.Text
	if strings.HasPrefix(text, "/") {
		return
	}

	logger.L().Debugf("Received message: %s", text)

	for _, link := range b.matcher.FindLinks(text) {
		logger.L().Debugf("Processing URL: %s from %s", link.URL, link.Platform)

		task := RelayTask{
			ChatID:  update.Message.Chat.ID,
			ReplyTo: update.Message.ID,
			Link:    link,
		}
		if !b.pool.Submit(task) {
			b.sendMessage(ctx, update.Message.Chat.ID,
				"Too many downloads in progress. Please try again in a moment.",
				update.Message.ID)
		}
	}
}
