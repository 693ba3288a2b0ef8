package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// ErrNoCodeAfterDeploy is returned when a mined creation transaction left no code
var ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")

// Backend is the subset of an RPC client needed to deploy and confirm contracts.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client implements the ChainClient port on top of go-ethereum
type Client struct {
	backend Backend
	closer  func()
	chainID *big.Int
	log     *slog.Logger
}

// NewClient creates a client that dials the network RPC endpoint on Connect
func NewClient(log *slog.Logger) *Client {
	return &Client{
		log: log.With("component", "chain"),
	}
}

// NewClientWithBackend creates a client bound to an existing backend
func NewClientWithBackend(backend Backend, log *slog.Logger) *Client {
	return &Client{
		backend: backend,
		log:     log.With("component", "chain"),
	}
}

// Connect establishes connection to the network and verifies its chain ID
func (c *Client) Connect(ctx context.Context, network *config.Network) (*big.Int, error) {
	if c.backend == nil {
		if network.RPCURL == "" {
			return nil, fmt.Errorf("network %s has no RPC URL", network.Name)
		}

		c.log.Debug("dialing rpc", "network", network.Name, "url", network.RPCURL)
		client, err := ethclient.DialContext(ctx, network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
		c.closer = client.Close
	}

	// A failed connect drops the dialed client so the next Connect dials again
	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		c.Close()
		return nil, fmt.Errorf("%w: expected chain ID %d, endpoint reports %d", domain.ErrNetworkMismatch, network.ChainID, chainID.Uint64())
	}

	c.chainID = chainID
	return new(big.Int).Set(chainID), nil
}

// Deploy signs and submits the creation transaction for a contract
func (c *Client) Deploy(ctx context.Context, opts *bind.TransactOpts, contract *models.Contract, args ...any) (*models.PendingDeployment, error) {
	if c.backend == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	parsed, err := contract.Artifact.ParsedABI()
	if err != nil {
		if len(args) > 0 {
			return nil, err
		}
		parsed = &abi.ABI{}
	}

	packed, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}

	if opts.Context == nil {
		opts.Context = ctx
	}

	address, tx, _, err := bind.DeployContract(opts, *parsed, contract.Artifact.CreationCode(), c.backend, args...)
	if err != nil {
		return nil, err
	}

	c.log.Debug("submitted deployment", "contract", contract.Name, "tx", tx.Hash().Hex(), "address", address.Hex(), "nonce", tx.Nonce())

	return &models.PendingDeployment{
		Address:         address,
		Transaction:     tx,
		Deployer:        opts.From,
		ConstructorArgs: packed,
	}, nil
}

// WaitDeployed blocks until the creation transaction is mined and code exists
// at the contract address
func (c *Client) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*types.Receipt, error) {
	if c.backend == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	receipt, err := bind.WaitMined(ctx, c.backend, pending.Transaction)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, domain.ErrDeploymentReverted
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	code, err := c.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return receipt, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return receipt, fmt.Errorf("%w at %s", ErrNoCodeAfterDeploy, address.Hex())
	}

	c.log.Debug("deployment confirmed", "address", address.Hex(), "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
	return receipt, nil
}

// CodeAt returns the code deployed at an address on the latest block
func (c *Client) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	if c.backend == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}
	return c.backend.CodeAt(ctx, address, nil)
}

// Close releases the RPC connection opened by Connect
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
		c.closer = nil
		c.backend = nil
	}
}

// Ensure the adapter implements the port
var _ usecase.ChainClient = (*Client)(nil)
