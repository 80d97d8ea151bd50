package sink

import (
	"context"
	"fmt"
	"strings"

	"go-superset-notifier/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSink posts a short job card to a chat.
type TelegramSink struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	return NewTelegramSinkWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramSinkWithEndpoint talks to a custom Bot API server.
func NewTelegramSinkWithEndpoint(token string, chatID int64, endpoint string) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramSink{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *TelegramSink) Name() string {
	return "Telegram"
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// jobMessage renders the MarkdownV2 body for a job.
func jobMessage(job models.JobRecord) string {
	msgText := fmt.Sprintf("🏢 *%s*\n", escapeMarkdown(job.Company))
	msgText += fmt.Sprintf("🎯 %s\n", escapeMarkdown(job.Role))
	msgText += fmt.Sprintf("💸 %s\n", escapeMarkdown(job.CTC))
	msgText += fmt.Sprintf("📍 %s\n", escapeMarkdown(job.Location))
	if job.Category != "" {
		msgText += fmt.Sprintf("🗂 %s\n", escapeMarkdown(job.Category))
	}
	msgText += fmt.Sprintf("🎓 %s\n", escapeMarkdown(job.Eligibility))
	msgText += fmt.Sprintf("🕒 %s\n", escapeMarkdown(job.Timestamp))
	return msgText
}

// Send posts the job card. The bot client takes no context, so a cancelled
// run is only honoured before the request starts.
func (b *TelegramSink) Send(ctx context.Context, job models.JobRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, jobMessage(job))
	msg.ParseMode = "MarkdownV2"
	if job.ApplyLink != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🔗 Apply", job.ApplyLink),
			),
		)
	}

	_, err := b.api.Send(msg)
	return err
}

// SendError reports a failed run.
func (b *TelegramSink) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}
