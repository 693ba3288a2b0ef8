package adapters

import (
	"github.com/google/wire"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/abi"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/blockchain"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/interactive"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/network"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/repository/contracts"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/repository/deployments"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/signers"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// RepositorySet provides artifact and registry repositories
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),

	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
)

// SignerSet provides the configured signer identities
var SignerSet = wire.NewSet(
	signers.NewSource,
	wire.Bind(new(usecase.SignerSource), new(*signers.Source)),
)

// BlockchainSet provides chain access and argument encoding
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),

	abi.NewEncoder,
	wire.Bind(new(usecase.ArgumentEncoder), new(*abi.Encoder)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolverFromConfig,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	SignerSet,
	BlockchainSet,
	ConfigSet,
	InteractiveSet,
)
