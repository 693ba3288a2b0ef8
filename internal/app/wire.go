//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters"
	"github.com/wrappedfriendtech/ftdeploy/internal/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/logging"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewRunScript,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewListContracts,
		usecase.NewShowDeployment,

		// App
		NewApp,
	)
	return nil, nil
}
