package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"

	"relay_bot/internal/logger"
)

// sendMessage 发送消息（统一错误处理）
func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, replyTo ...int) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	if len(replyTo) > 0 && replyTo[0] > 0 {
		params.ReplyParameters = &botModels.ReplyParameters{
			MessageID: replyTo[0],
		}
	}

	if _, err := b.bot.SendMessage(ctx, params); err != nil {
		logger.L().Errorf("Failed to send message to chat %d: %v", chatID, err)
	}
}
