package bot

import (
	"context"

	tbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/j0lvera/kotik/internal/config"
	"github.com/j0lvera/kotik/internal/provider"
	"github.com/j0lvera/kotik/internal/session"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	Config *config.Config
	Client *provider.Client
}

type Result struct {
	fx.Out

	Bot   *tbot.Bot
	Store *session.Store
}

func New(lc fx.Lifecycle, p Params, log zerolog.Logger) (Result, error) {
	store := session.NewStore()

	// The dispatcher needs the bot for its sender and the bot needs the
	// dispatcher in its handlers; handlers only run after Start, so the
	// assignment below happens first.
	var dispatcher *Dispatcher

	opts := []tbot.Option{
		tbot.WithDefaultHandler(
			func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
				handleUpdate(ctx, update, dispatcher, &log)
			},
		),
	}

	tg, err := tbot.New(p.Config.BotToken, opts...)
	if err != nil {
		return Result{}, err
	}

	dispatcher = NewDispatcher(
		&telegramSender{tg: tg},
		p.Client,
		store,
		p.Config.Messages,
		p.Config.ReplyTimeout,
		log,
	)

	tg.RegisterHandler(
		tbot.HandlerTypeMessageText, "/start", tbot.MatchTypePrefix,
		func(ctx context.Context, tg *tbot.Bot, update *models.Update) {
			if update.Message == nil {
				return
			}
			in := Incoming{ChatID: update.Message.Chat.ID}
			if update.Message.From != nil {
				in.FirstName = update.Message.From.FirstName
			}
			dispatcher.HandleStart(ctx, in)
		},
	)

	lc.Append(
		fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info().Msg("starting telegram bot...")
				go tg.Start(context.Background())
				return nil
			},
			OnStop: func(ctx context.Context) error {
				log.Info().Msg("stopping telegram bot...")
				return nil
			},
		},
	)

	return Result{
		Bot:   tg,
		Store: store,
	}, nil
}

func Module() fx.Option {
	return fx.Module(
		"bot",
		fx.Provide(
			New,
		),
		fx.Invoke(
			func(bot *tbot.Bot) {},
		),
	)
}

// handleUpdate guards one update: a panic or failure while handling a single
// message is logged and never takes the process down with it.
func handleUpdate(
	ctx context.Context,
	update *models.Update,
	dispatcher *Dispatcher,
	log *zerolog.Logger,
) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from message handler panic")
		}
	}()

	// Guard against non-message updates and non-text messages
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	in := Incoming{
		ChatID: update.Message.Chat.ID,
		Text:   update.Message.Text,
	}
	if update.Message.From != nil {
		in.FirstName = update.Message.From.FirstName
	}

	dispatcher.HandleText(ctx, in)
}
