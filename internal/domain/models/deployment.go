package models

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeploymentMethod represents how the contract was deployed
type DeploymentMethod string

const (
	DeploymentMethodCreate DeploymentMethod = "CREATE"
)

// Deployment represents a confirmed contract deployment record
type Deployment struct {
	// Core identification
	ID           string `json:"id"` // e.g., "31337/WrappedFriendtech/0x5FbD..."
	ChainID      uint64 `json:"chainId"`
	Network      string `json:"network"`
	ContractName string `json:"contractName"`
	DisplayName  string `json:"displayName,omitempty"`
	Address      string `json:"address"`

	// Transaction details
	Method          DeploymentMethod `json:"method"`
	Deployer        string           `json:"deployer"`
	TransactionHash string           `json:"transactionHash"`
	BlockNumber     uint64           `json:"blockNumber"`
	GasUsed         uint64           `json:"gasUsed"`
	ConstructorArgs string           `json:"constructorArgs,omitempty"` // Hex encoded

	// Contract artifact information
	ArtifactPath string `json:"artifactPath,omitempty"`
	SourcePath   string `json:"sourcePath,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ContractDisplayName returns the name used in user-facing output
func (d *Deployment) ContractDisplayName() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.ContractName
}

// DeploymentID builds the registry identifier for a deployment
func DeploymentID(chainID uint64, contractName string, address common.Address) string {
	return fmt.Sprintf("%d/%s/%s", chainID, contractName, strings.ToLower(address.Hex()))
}

// PendingDeployment is a submitted, not yet confirmed, creation transaction
type PendingDeployment struct {
	Address     common.Address
	Transaction *types.Transaction
	Deployer    common.Address
	// Packed constructor arguments appended to the creation code
	ConstructorArgs []byte
}

// Hash returns the creation transaction hash
func (p *PendingDeployment) Hash() common.Hash {
	return p.Transaction.Hash()
}

// Signer is an account identity able to authorize transactions on a chain
type Signer struct {
	Name    string
	Address common.Address

	// Transactor builds transaction options bound to a chain
	Transactor func(chainID *big.Int) (*bind.TransactOpts, error)
}
