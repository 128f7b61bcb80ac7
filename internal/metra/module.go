package metra

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"metra",
		fx.Provide(NewTokenStore, NewClient),
	)
}
