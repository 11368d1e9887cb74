package bot

import (
	"context"

	"github.com/j0lvera/kotik/internal/provider"
)

// Menu labels are a fixed contract with the reply keyboard and are matched
// case-sensitively.
const (
	LabelCat     = "show a cat"
	LabelQuote   = "give me a quote"
	LabelWeather = "show weather"
	LabelIMEI    = "check identifier"
	LabelStart   = "start"
)

// Incoming is one text message from the transport.
type Incoming struct {
	ChatID    int64
	Text      string
	FirstName string
}

// Sender delivers replies to the messaging transport.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	// SendMenu sends text together with the fixed reply keyboard
	SendMenu(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, url string) error
	SendTyping(ctx context.Context, chatID int64)
}

// Providers is the outbound data gateway the dispatcher consumes.
type Providers interface {
	Weather(ctx context.Context, city string) (provider.WeatherReport, error)
	Quote(ctx context.Context) string
	RandomImage(ctx context.Context) (string, error)
	CheckIMEI(ctx context.Context, imei string) (provider.IMEICheck, error)
}
