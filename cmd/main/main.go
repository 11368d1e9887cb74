package main

import (
	"github.com/ipfans/fxlogger"
	"github.com/j0lvera/kotik/internal/bot"
	"github.com/j0lvera/kotik/internal/config"
	"github.com/j0lvera/kotik/internal/log"
	"github.com/j0lvera/kotik/internal/provider"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {

	fx.New(
		log.Module(),
		config.Module(),
		provider.Module(),
		bot.Module(),
		fx.WithLogger(
			func(logger zerolog.Logger) fxevent.Logger {
				return fxlogger.WithZerolog(logger)()
			},
		),
	).Run()
}
