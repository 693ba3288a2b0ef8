package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// DeploymentRepository handles persistence of confirmed deployments
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
}

// DeploymentFilter narrows registry listings; zero values match everything
type DeploymentFilter struct {
	ChainID      uint64
	ContractName string
	Network      string
}

// ContractRepository provides access to compiled contract factories
type ContractRepository interface {
	// GetContract resolves "Name" or "path/to/File.sol:Name"
	GetContract(ctx context.Context, ref string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// SignerSource lists the signer identities available to this run
type SignerSource interface {
	Signers(ctx context.Context) ([]*models.Signer, error)
}

// ChainClient submits deployments to a network and waits for them
type ChainClient interface {
	Connect(ctx context.Context, network *config.Network) (*big.Int, error)
	Deploy(ctx context.Context, opts *bind.TransactOpts, contract *models.Contract, args ...any) (*models.PendingDeployment, error)
	WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*types.Receipt, error)
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
	Close()
}

// ArgumentEncoder converts user-supplied strings into typed constructor arguments
type ArgumentEncoder interface {
	EncodeConstructorArgs(parsed *abi.ABI, args []string, deployer common.Address) ([]any, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	FetchChainID(ctx context.Context, networkName string) (uint64, error)
}

// ContractSelector handles interactive selection of contracts
type ContractSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}

// ExecutionStage represents a stage in the deployment sequence
type ExecutionStage string

const (
	StageSigners    ExecutionStage = "Signers"
	StageResolving  ExecutionStage = "Resolving"
	StageConnecting ExecutionStage = "Connecting"
	StageSubmitting ExecutionStage = "Submitting"
	StageConfirming ExecutionStage = "Confirming"
	StageRecording  ExecutionStage = "Recording"
	StageLoading    ExecutionStage = "Loading"
	StageCompleted  ExecutionStage = "Completed"
	StageFailed     ExecutionStage = "Failed"
)
