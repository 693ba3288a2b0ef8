package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Ref is a registry ID, a contract address, or a contract name
	Ref string

	// CheckCode queries the network for code at the recorded address
	CheckCode bool
}

// ShowDeploymentResult contains a recorded deployment and its on-chain status
type ShowDeploymentResult struct {
	Deployment *models.Deployment
	Checked    bool
	HasCode    bool
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config *config.RuntimeConfig
	store  DeploymentRepository
	client ChainClient
	sink   ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentRepository, client ChainClient, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config: cfg,
		store:  store,
		client: client,
		sink:   sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	result, err := uc.run(ctx, params)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
	}
	return result, err
}

func (uc *ShowDeployment) run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading deployment details",
		Spinner: true,
	})

	deployment, err := uc.find(ctx, params.Ref)
	if err != nil {
		return nil, err
	}

	result := &ShowDeploymentResult{Deployment: deployment}
	if params.CheckCode && uc.config.Network != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   StageConnecting,
			Message: fmt.Sprintf("Checking code on %s", uc.config.Network.Name),
			Spinner: true,
		})

		if _, err := uc.client.Connect(ctx, uc.config.Network); err != nil {
			return nil, fmt.Errorf("failed to connect to network %s: %w", uc.config.Network.Name, err)
		}
		defer uc.client.Close()

		code, err := uc.client.CodeAt(ctx, common.HexToAddress(deployment.Address))
		if err != nil {
			return nil, fmt.Errorf("failed to read code at %s: %w", deployment.Address, err)
		}
		result.Checked = true
		result.HasCode = len(code) > 0
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: "Deployment loaded",
	})

	return result, nil
}

func (uc *ShowDeployment) find(ctx context.Context, ref string) (*models.Deployment, error) {
	if strings.Count(ref, "/") == 2 {
		return uc.store.GetDeployment(ctx, ref)
	}

	filter := DeploymentFilter{}
	if uc.config.Network != nil {
		if common.IsHexAddress(ref) && uc.config.Network.ChainID != 0 {
			return uc.store.GetDeploymentByAddress(ctx, uc.config.Network.ChainID, ref)
		}
		filter.Network = uc.config.Network.Name
	}
	deployments, err := uc.store.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	var match *models.Deployment
	for _, d := range deployments {
		if common.IsHexAddress(ref) {
			if strings.EqualFold(d.Address, ref) {
				return d, nil
			}
			continue
		}
		// Latest deployment of a contract wins
		if d.ContractName == ref || d.DisplayName == ref {
			if match == nil || d.CreatedAt.After(match.CreatedAt) {
				match = d
			}
		}
	}
	if match == nil {
		return nil, fmt.Errorf("deployment %s: %w", ref, domain.ErrNotFound)
	}
	return match, nil
}
