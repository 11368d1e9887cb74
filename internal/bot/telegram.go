package bot

import (
	"context"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// telegramSender implements Sender on top of the Telegram Bot API client.
type telegramSender struct {
	tg *tbot.Bot
}

func (s *telegramSender) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := s.tg.SendMessage(ctx, &tbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (s *telegramSender) SendMenu(ctx context.Context, chatID int64, text string) error {
	_, err := s.tg.SendMessage(ctx, &tbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: menuKeyboard(),
	})
	return err
}

func (s *telegramSender) SendPhoto(ctx context.Context, chatID int64, url string) error {
	_, err := s.tg.SendPhoto(ctx, &tbot.SendPhotoParams{
		ChatID: chatID,
		Photo:  &models.InputFileString{Data: url},
	})
	return err
}

func (s *telegramSender) SendTyping(ctx context.Context, chatID int64) {
	s.tg.SendChatAction(ctx, &tbot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
}

// menuKeyboard renders the fixed reply keyboard with the five menu labels.
func menuKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: LabelCat}, {Text: LabelQuote}, {Text: LabelWeather}},
			{{Text: LabelIMEI}, {Text: LabelStart}},
		},
		ResizeKeyboard: true,
	}
}
