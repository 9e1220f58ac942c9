package telegram

import (
	"context"

	"relay_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// safeHandler 中间件：捕获 handler 中逃逸的 panic
// 记录出错的 update 并给用户一个通用的失败提示
func (b *Bot) safeHandler(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Errorf("Handler panic recovered: %v, update: %+v", r, update)
				if update != nil && update.Message != nil {
					b.sendMessage(ctx, update.Message.Chat.ID, "An error occurred. Please try again later.")
				}
			}
		}()

		next(ctx, botInstance, update)
	}
}
