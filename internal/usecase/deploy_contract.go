package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// DeployContractParams contains parameters for a single deployment
type DeployContractParams struct {
	// Contract is a bare name or a "path:Name" reference
	Contract string
	// DisplayName overrides the contract name in the confirmation line
	DisplayName string
	// Signer selects a named account; empty means the first available
	Signer string
	// Args are raw constructor arguments, encoded against the artifact ABI
	Args []string
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Deployment *models.Deployment
	Receipt    *types.Receipt
	// RecordError is set when the deployment succeeded on chain but could not be saved locally
	RecordError error
}

// DeployContract obtains a signer, resolves a contract factory, deploys it and
// waits for confirmation
type DeployContract struct {
	config    *config.RuntimeConfig
	signers   SignerSource
	contracts ContractRepository
	client    ChainClient
	encoder   ArgumentEncoder
	store     DeploymentRepository
	sink      ProgressSink
	now       func() time.Time
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	signers SignerSource,
	contracts ContractRepository,
	client ChainClient,
	encoder ArgumentEncoder,
	store DeploymentRepository,
	sink ProgressSink,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		signers:   signers,
		contracts: contracts,
		client:    client,
		encoder:   encoder,
		store:     store,
		sink:      sink,
		now:       time.Now,
	}
}

// Run executes the deployment sequence. Each step must finish before the next
// one starts; any error aborts the run.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	result, err := uc.run(ctx, params)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   StageFailed,
			Message: err.Error(),
		})
	}
	return result, err
}

func (uc *DeployContract) run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network configured")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageSigners,
		Message: "Loading signers",
		Spinner: true,
	})
	signer, err := uc.selectSigner(ctx, params.Signer)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Resolving contract %s", params.Contract),
		Spinner: true,
	})
	contract, err := uc.contracts.GetContract(ctx, params.Contract)
	if err != nil {
		return nil, err
	}
	if !contract.IsDeployable() {
		return nil, fmt.Errorf("%s: %w", contract.Key(), domain.ErrNotDeployable)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConnecting,
		Message: fmt.Sprintf("Connecting to %s", uc.config.Network.Name),
		Spinner: true,
	})
	chainID, err := uc.client.Connect(ctx, uc.config.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to network %s: %w", uc.config.Network.Name, err)
	}
	defer uc.client.Close()

	opts, err := signer.Transactor(chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for signer %s: %w", signer.Name, err)
	}
	opts.Context = ctx

	args, err := uc.encodeArgs(contract, params.Args, signer.Address)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Deploying %s from %s", contract.Name, signer.Address.Hex()),
		Spinner: true,
	})
	pending, err := uc.client.Deploy(ctx, opts, contract, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", contract.Name, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for transaction %s", pending.Hash().Hex()),
		Spinner: true,
	})
	receipt, err := uc.client.WaitDeployed(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("deployment of %s (tx %s) not confirmed: %w", contract.Name, pending.Hash().Hex(), err)
	}

	deployment := uc.buildDeployment(chainID, contract, params.DisplayName, pending, receipt)
	result := &DeployContractResult{
		Deployment: deployment,
		Receipt:    receipt,
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageRecording,
		Message: "Recording deployment",
		Spinner: true,
	})
	if err := uc.store.SaveDeployment(ctx, deployment); err != nil {
		result.RecordError = fmt.Errorf("failed to record deployment %s: %w", deployment.ID, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: "Deployment confirmed",
	})

	return result, nil
}

// selectSigner picks the named signer or, when none is named, the first one
func (uc *DeployContract) selectSigner(ctx context.Context, name string) (*models.Signer, error) {
	signers, err := uc.signers.Signers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signers: %w", err)
	}
	if len(signers) == 0 {
		return nil, domain.ErrNoSigners
	}
	if name == "" {
		return signers[0], nil
	}

	for _, s := range signers {
		if s.Name == name {
			return s, nil
		}
	}
	// Accept an address in place of a name
	if common.IsHexAddress(name) {
		address := common.HexToAddress(name)
		for _, s := range signers {
			if s.Address == address {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrSignerNotFound, name)
}

func (uc *DeployContract) encodeArgs(contract *models.Contract, raw []string, deployer common.Address) ([]any, error) {
	parsed, err := contract.Artifact.ParsedABI()
	if err != nil {
		if len(raw) == 0 {
			// Bytecode-only artifacts can still be deployed without arguments
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", contract.Key(), err)
	}

	args, err := uc.encoder.EncodeConstructorArgs(parsed, raw, deployer)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArguments) {
			return nil, fmt.Errorf("%s: %w", contract.Name, err)
		}
		return nil, fmt.Errorf("failed to encode constructor arguments for %s: %w", contract.Name, err)
	}
	return args, nil
}

func (uc *DeployContract) buildDeployment(
	chainID *big.Int,
	contract *models.Contract,
	displayName string,
	pending *models.PendingDeployment,
	receipt *types.Receipt,
) *models.Deployment {
	deployment := &models.Deployment{
		ID:              models.DeploymentID(chainID.Uint64(), contract.Name, pending.Address),
		ChainID:         chainID.Uint64(),
		Network:         uc.config.Network.Name,
		ContractName:    contract.Name,
		DisplayName:     strings.TrimSpace(displayName),
		Address:         pending.Address.Hex(),
		Method:          models.DeploymentMethodCreate,
		Deployer:        pending.Deployer.Hex(),
		TransactionHash: pending.Hash().Hex(),
		ArtifactPath:    contract.ArtifactPath,
		SourcePath:      contract.Path,
		CreatedAt:       uc.now(),
	}
	if len(pending.ConstructorArgs) > 0 {
		deployment.ConstructorArgs = hexutil.Encode(pending.ConstructorArgs)
	}
	if receipt != nil {
		deployment.GasUsed = receipt.GasUsed
		if receipt.BlockNumber != nil {
			deployment.BlockNumber = receipt.BlockNumber.Uint64()
		}
	}
	return deployment
}
