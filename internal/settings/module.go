package settings

import (
	"metra_client/internal/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"settings",
		fx.Provide(func(cfg config.Config) *Store {
			return NewStore(cfg.SettingsFile)
		}),
	)
}
