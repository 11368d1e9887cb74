package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/j0lvera/kotik/internal/config"
	"github.com/j0lvera/kotik/internal/imei"
	"github.com/j0lvera/kotik/internal/session"
	"github.com/rs/zerolog"
)

// Dispatcher routes every incoming text message: replies to an outstanding
// prompt go to the handler for that state, everything else is matched against
// the menu labels.
type Dispatcher struct {
	sender    Sender
	providers Providers
	store     *session.Store
	msgs      config.Messages
	timeout   time.Duration
	log       zerolog.Logger
}

// NewDispatcher creates a dispatcher. timeout is the reply window armed for
// every free-text prompt.
func NewDispatcher(
	sender Sender,
	providers Providers,
	store *session.Store,
	msgs config.Messages,
	timeout time.Duration,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		providers: providers,
		store:     store,
		msgs:      msgs,
		timeout:   timeout,
		log:       logger.With().Str("component", "dispatcher").Logger(),
	}
}

// HandleText processes one incoming text message. Handling for a single chat
// is serialized by the session lock; different chats run concurrently.
func (d *Dispatcher) HandleText(ctx context.Context, in Incoming) {
	sess := d.store.Get(in.ChatID)
	sess.Lock()
	defer sess.Unlock()

	// An outstanding prompt always wins over menu matching, otherwise a city
	// named like a menu label would be misrouted as a selection.
	switch sess.State() {
	case session.StateAwaitingCity:
		d.handleCityReply(ctx, sess, in.Text)
	case session.StateAwaitingIMEI:
		d.handleIMEIReply(ctx, sess, in.Text)
	default:
		d.handleMenu(ctx, sess, in)
	}
}

// HandleStart processes the /start command.
func (d *Dispatcher) HandleStart(ctx context.Context, in Incoming) {
	sess := d.store.Get(in.ChatID)
	sess.Lock()
	defer sess.Unlock()

	d.greet(ctx, sess, in.FirstName)
}

func (d *Dispatcher) handleMenu(ctx context.Context, sess *session.Session, in Incoming) {
	chatID := sess.ChatID()

	switch in.Text {
	case LabelCat:
		d.sendCat(ctx, chatID)
	case LabelQuote:
		d.sender.SendTyping(ctx, chatID)
		d.send(ctx, chatID, d.providers.Quote(ctx))
	case LabelWeather:
		d.send(ctx, chatID, d.msgs.AskCity)
		sess.Prompt(session.StateAwaitingCity, d.timeout, d.timeoutNotice)
	case LabelIMEI:
		d.send(ctx, chatID, d.msgs.AskIMEI)
		sess.Prompt(session.StateAwaitingIMEI, d.timeout, d.timeoutNotice)
	case LabelStart:
		d.greet(ctx, sess, in.FirstName)
	default:
		// No prompt outstanding and no known label: stay quiet
		d.log.Debug().Int64("chat_id", chatID).Msg("ignoring unrecognized text")
	}
}

// handleCityReply resolves an AwaitingCity prompt. Any reply settles the
// session; a failed lookup is surfaced once and does not re-prompt.
func (d *Dispatcher) handleCityReply(ctx context.Context, sess *session.Session, city string) {
	sess.Settle()
	chatID := sess.ChatID()

	d.sender.SendTyping(ctx, chatID)
	report, err := d.providers.Weather(ctx, city)
	if err != nil {
		d.log.Warn().Err(err).Int64("chat_id", chatID).Msg("weather fetch failed")
		d.send(ctx, chatID, d.msgs.WeatherFailed)
		return
	}

	d.send(ctx, chatID, fmt.Sprintf(
		d.msgs.WeatherReport,
		city, report.TemperatureCelsius, report.Description, report.WindSpeedMS,
	))
}

// handleIMEIReply resolves an AwaitingIMEI prompt. Invalid input is the one
// case that re-prompts, with a fresh reply window; a valid identifier settles
// the session whether or not the lookup succeeds.
func (d *Dispatcher) handleIMEIReply(ctx context.Context, sess *session.Session, text string) {
	chatID := sess.ChatID()

	if !imei.Valid(text) {
		d.send(ctx, chatID, d.msgs.InvalidIMEI)
		sess.Prompt(session.StateAwaitingIMEI, d.timeout, d.timeoutNotice)
		return
	}

	sess.Settle()
	d.sender.SendTyping(ctx, chatID)
	check, err := d.providers.CheckIMEI(ctx, text)
	if err != nil {
		d.log.Warn().Err(err).Int64("chat_id", chatID).Msg("imei check failed")
		d.send(ctx, chatID, d.msgs.IMEIFailed)
		return
	}

	d.send(ctx, chatID, fmt.Sprintf(
		d.msgs.IMEIReport,
		orUnknown(check.Status),
		orUnknown(check.Model),
		orUnknown(check.Manufacturer),
		orUnknown(check.Serial),
	))
}

// greet runs the start flow: greeting with the keyboard, a cat picture and a
// quote. It settles the session first so a prompt left hanging by an earlier
// flow cannot fire a stale timeout after the restart.
func (d *Dispatcher) greet(ctx context.Context, sess *session.Session, firstName string) {
	sess.Settle()
	chatID := sess.ChatID()

	if firstName == "" {
		firstName = "there"
	}
	if err := d.sender.SendMenu(ctx, chatID, fmt.Sprintf(d.msgs.Greeting, firstName)); err != nil {
		d.log.Error().Err(err).Int64("chat_id", chatID).Msg("unable to send greeting")
	}
	d.sendCat(ctx, chatID)
	d.send(ctx, chatID, d.providers.Quote(ctx))
}

func (d *Dispatcher) sendCat(ctx context.Context, chatID int64) {
	d.sender.SendTyping(ctx, chatID)
	url, err := d.providers.RandomImage(ctx)
	if err != nil {
		d.log.Warn().Err(err).Int64("chat_id", chatID).Msg("image fetch failed")
		d.send(ctx, chatID, d.msgs.CatFailed)
		return
	}

	if err := d.sender.SendPhoto(ctx, chatID, url); err != nil {
		d.log.Error().Err(err).Int64("chat_id", chatID).Msg("unable to send photo")
	}
}

// timeoutNotice runs from the session's timer when a reply window closes.
func (d *Dispatcher) timeoutNotice(chatID int64) {
	d.log.Info().Int64("chat_id", chatID).Msg("reply window expired")
	d.send(context.Background(), chatID, d.msgs.ReplyTimeout)
}

// send delivers text and logs, rather than propagates, transport failures.
func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if err := d.sender.SendText(ctx, chatID, text); err != nil {
		d.log.Error().Err(err).Int64("chat_id", chatID).Msg("unable to send message")
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
