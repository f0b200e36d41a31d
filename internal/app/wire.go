//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"aihub/internal/app/language"
	"aihub/internal/config"
)

// InitializeApp assembles the full application from the process
// environment. The returned cleanup closes the settings database.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.InitializeConfig,
		provideLogger,
		provideStorage,
		provideRegistry,
		provideDB,
		provideSettingsStore,
		providePromRegistry,
		provideMetrics,
		provideEngines,
		provideProviders,
		provideResolver,
		language.NewDetector,
		NewApp,
	)
	return nil, nil, nil
}
