package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// ListContractsParams contains parameters for listing contracts
type ListContractsParams struct {
	// IncludeAbstract also lists artifacts without creation bytecode
	IncludeAbstract bool
}

// ListContractsResult contains the contracts found in the artifacts directory
type ListContractsResult struct {
	Contracts []*models.Contract
}

// ListContracts lists contract factories available for deployment
type ListContracts struct {
	contracts ContractRepository
}

// NewListContracts creates a new ListContracts use case
func NewListContracts(contracts ContractRepository) *ListContracts {
	return &ListContracts{
		contracts: contracts,
	}
}

// Run executes the use case
func (uc *ListContracts) Run(ctx context.Context, params ListContractsParams) (*ListContractsResult, error) {
	contracts, err := uc.contracts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	if !params.IncludeAbstract {
		contracts = lo.Filter(contracts, func(c *models.Contract, _ int) bool {
			return c.IsDeployable()
		})
	}

	sort.Slice(contracts, func(i, j int) bool {
		if contracts[i].Name != contracts[j].Name {
			return contracts[i].Name < contracts[j].Name
		}
		return contracts[i].Path < contracts[j].Path
	})

	return &ListContractsResult{Contracts: contracts}, nil
}
