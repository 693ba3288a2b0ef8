package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNoSigners is returned when no signer identity is configured
	ErrNoSigners = errors.New("no signers available")

	// ErrSignerNotFound is returned when a named signer is not configured
	ErrSignerNotFound = errors.New("signer not found")

	// ErrContractNotFound is returned when a contract can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotDeployable is returned for artifacts without creation bytecode
	ErrNotDeployable = errors.New("contract has no creation bytecode")

	// ErrInvalidArguments is returned when constructor arguments don't match the ABI
	ErrInvalidArguments = errors.New("invalid constructor arguments")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNetworkMismatch is returned when the endpoint reports an unexpected chain ID
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrDeploymentReverted is returned when the creation transaction was mined but failed
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrScriptNotFound is returned when a named deploy script is not configured
	ErrScriptNotFound = errors.New("script not found")
)

// NoContractsMatchErr is returned when no artifact matches a contract reference
type NoContractsMatchErr struct {
	Query string
}

func (e NoContractsMatchErr) Error() string {
	return fmt.Sprintf("no contracts match %q", e.Query)
}

func (e NoContractsMatchErr) Unwrap() error {
	return ErrContractNotFound
}

// AmbiguousContractErr is returned when a bare contract name matches several artifacts
type AmbiguousContractErr struct {
	Query   string
	Matches []*models.Contract
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]*models.Contract, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key() < sorted[j].Key()
	})

	var suggestions []string
	for _, contract := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s (%s)", contract.Name, contract.Path))
	}

	return fmt.Sprintf("multiple contracts found matching %q - use full path:contract format to disambiguate:\n%s",
		e.Query, strings.Join(suggestions, "\n"))
}
