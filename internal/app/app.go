package app

import (
	"log/slog"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.ContractSelector

	// Use cases
	DeployContract  *usecase.DeployContract
	RunScript       *usecase.RunScript
	ListNetworks    *usecase.ListNetworks
	ListDeployments *usecase.ListDeployments
	ListContracts   *usecase.ListContracts
	ShowDeployment  *usecase.ShowDeployment
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.ContractSelector,
	deployContract *usecase.DeployContract,
	runScript *usecase.RunScript,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	listContracts *usecase.ListContracts,
	showDeployment *usecase.ShowDeployment,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Selector:        selector,
		DeployContract:  deployContract,
		RunScript:       runScript,
		ListNetworks:    listNetworks,
		ListDeployments: listDeployments,
		ListContracts:   listContracts,
		ShowDeployment:  showDeployment,
	}, nil
}
