package usecase

import (
	"context"
	"sort"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	ContractName string
	Network      string
	ChainID      uint64
}

// DeploymentListResult contains the deployments and their summary
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary counts deployments per contract and per chain
type DeploymentSummary struct {
	Total      int
	ByContract map[string]int
	ByChain    map[uint64]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	store DeploymentRepository
	sink  ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		store: store,
		sink:  sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	filter := DeploymentFilter{
		ChainID:      params.ChainID,
		ContractName: params.ContractName,
		Network:      params.Network,
	}

	deployments, err := uc.store.ListDeployments(ctx, filter)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, err
	}

	sortDeployments(deployments)
	summary := calculateSummary(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}

// sortDeployments sorts deployments by creation time, oldest first
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if !deployments[i].CreatedAt.Equal(deployments[j].CreatedAt) {
			return deployments[i].CreatedAt.Before(deployments[j].CreatedAt)
		}
		return deployments[i].ID < deployments[j].ID
	})
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(deployments),
		ByContract: make(map[string]int),
		ByChain:    make(map[uint64]int),
	}

	for _, dep := range deployments {
		summary.ByContract[dep.ContractName]++
		summary.ByChain[dep.ChainID]++
	}

	return summary
}
