package telegram

import (
	"context"
	"io"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// chatMessenger 基于 go-telegram/bot 实现 pipeline.Messenger
type chatMessenger struct {
	bot *bot.Bot
}

func newChatMessenger(b *bot.Bot) *chatMessenger {
	return &chatMessenger{bot: b}
}

// SendText 发送文本消息并返回新消息 ID
func (m *chatMessenger) SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if replyTo > 0 {
		params.ReplyParameters = &botModels.ReplyParameters{MessageID: replyTo}
	}

	msg, err := m.bot.SendMessage(ctx, params)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditText 原地修改已有消息的文本
func (m *chatMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := m.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	return err
}

// SendVideo 以视频附件形式发送文件内容
func (m *chatMessenger) SendVideo(ctx context.Context, chatID int64, replyTo int, video io.Reader, filename, caption string) error {
	params := &bot.SendVideoParams{
		ChatID:  chatID,
		Video:   &botModels.InputFileUpload{Filename: filename, Data: video},
		Caption: caption,
	}
	if replyTo > 0 {
		params.ReplyParameters = &botModels.ReplyParameters{MessageID: replyTo}
	}

	_, err := m.bot.SendVideo(ctx, params)
	return err
}

// SendPhoto 以图片附件形式发送文件内容
func (m *chatMessenger) SendPhoto(ctx context.Context, chatID int64, replyTo int, photo io.Reader, filename, caption string) error {
	params := &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &botModels.InputFileUpload{Filename: filename, Data: photo},
		Caption: caption,
	}
	if replyTo > 0 {
		params.ReplyParameters = &botModels.ReplyParameters{MessageID: replyTo}
	}

	_, err := m.bot.SendPhoto(ctx, params)
	return err
}
