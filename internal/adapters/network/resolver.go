package network

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

const (
	// LocalhostNetwork is always available and points at a local dev node
	LocalhostNetwork = "localhost"
	LocalhostRPCURL  = "http://127.0.0.1:8545"
)

// Resolver handles network configuration resolution
type Resolver struct {
	networks map[string]*config.Network
}

// NewResolver creates a network resolver from ftdeploy.toml networks and
// foundry.toml rpc_endpoints. Entries in ftdeploy.toml win.
func NewResolver(project *config.ProjectConfig, foundry *config.FoundryConfig) *Resolver {
	r := &Resolver{
		networks: make(map[string]*config.Network),
	}

	r.addNetwork(&config.Network{Name: LocalhostNetwork, RPCURL: LocalhostRPCURL})

	if foundry != nil {
		for name, url := range foundry.RpcEndpoints {
			r.addNetwork(&config.Network{Name: name, RPCURL: url})
		}
	}

	if project != nil {
		for name, network := range project.Networks {
			r.addNetwork(&config.Network{
				Name:        name,
				RPCURL:      network.RPCURL,
				ChainID:     network.ChainID,
				ExplorerURL: network.ExplorerURL,
			})
		}
	}

	return r
}

// NewResolverFromConfig creates a resolver for the loaded runtime configuration
func NewResolverFromConfig(cfg *config.RuntimeConfig) *Resolver {
	return NewResolver(cfg.ProjectConfig, cfg.FoundryConfig)
}

// addNetwork adds a network configuration
func (r *Resolver) addNetwork(network *config.Network) {
	r.networks[strings.ToLower(network.Name)] = network
}

// GetNetworks returns all configured network names, sorted
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	names := lo.Map(lo.Values(r.networks), func(n *config.Network, _ int) string {
		return n.Name
	})
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network by name or RPC URL. The chain ID is left
// at zero when it isn't configured; the chain client reads it on connect.
func (r *Resolver) ResolveNetwork(ctx context.Context, input string) (*config.Network, error) {
	if input == "" {
		return nil, fmt.Errorf("network not specified")
	}

	if network, ok := r.networks[strings.ToLower(input)]; ok {
		if network.RPCURL == "" {
			return nil, fmt.Errorf("no RPC URL configured for network %s", network.Name)
		}
		clone := *network
		return &clone, nil
	}

	// Ad-hoc network for a raw RPC URL, named after its host. The path and
	// query often carry API keys and stay out of the registry.
	if isRPCURL(input) {
		u, err := url.Parse(input)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid RPC URL %q", input)
		}
		return &config.Network{
			Name:   u.Host,
			RPCURL: input,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, input)
}

// FetchChainID asks the network's endpoint for its chain ID
func (r *Resolver) FetchChainID(ctx context.Context, networkName string) (uint64, error) {
	network, err := r.ResolveNetwork(ctx, networkName)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	return chainID.Uint64(), nil
}

func isRPCURL(input string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(input, prefix) {
			return true
		}
	}
	return false
}

// Ensure the adapter implements the port
var _ usecase.NetworkResolver = (*Resolver)(nil)
