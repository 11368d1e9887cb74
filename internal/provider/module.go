package provider

import (
	"github.com/j0lvera/kotik/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params for creating the provider client
type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

// Result of creating the provider client
type Result struct {
	fx.Out

	Client *Client
}

// New creates the provider client from configuration
func New(p Params) Result {
	return Result{
		Client: NewClient(p.Config, p.Logger),
	}
}

// Module provides the provider client
func Module() fx.Option {
	return fx.Module(
		"provider",
		fx.Provide(
			New,
		),
	)
}
