package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RuntimeConfig{Network: &config.Network{Name: "localhost"}}

	t.Run("lists networks with chain IDs", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		resolver.On("GetNetworks", ctx).Return([]string{"base", "localhost", "broken"})
		resolver.On("ResolveNetwork", ctx, "base").Return(&config.Network{Name: "base", RPCURL: "https://mainnet.base.org", ChainID: 8453}, nil)
		resolver.On("ResolveNetwork", ctx, "localhost").Return(&config.Network{Name: "localhost", RPCURL: "http://127.0.0.1:8545"}, nil)
		resolver.On("ResolveNetwork", ctx, "broken").Return(nil, domain.ErrNetworkNotFound)

		uc := usecase.NewListNetworks(cfg, resolver)
		result, err := uc.Run(ctx, usecase.ListNetworksParams{})

		require.NoError(t, err)
		require.Len(t, result.Networks, 3)
		assert.Equal(t, "localhost", result.Current)
		assert.Equal(t, uint64(8453), result.Networks[0].ChainID)
		assert.NoError(t, result.Networks[0].Error)
		assert.Equal(t, uint64(0), result.Networks[1].ChainID)
		assert.ErrorIs(t, result.Networks[2].Error, domain.ErrNetworkNotFound)
		resolver.AssertNotCalled(t, "FetchChainID", ctx, "localhost")
	})

	t.Run("fetches missing chain IDs", func(t *testing.T) {
		resolver := new(MockNetworkResolver)
		resolver.On("GetNetworks", ctx).Return([]string{"localhost", "offline"})
		resolver.On("ResolveNetwork", ctx, "localhost").Return(&config.Network{Name: "localhost"}, nil)
		resolver.On("ResolveNetwork", ctx, "offline").Return(&config.Network{Name: "offline"}, nil)
		resolver.On("FetchChainID", ctx, "localhost").Return(uint64(31337), nil)
		resolver.On("FetchChainID", ctx, "offline").Return(uint64(0), errors.New("connection refused"))

		uc := usecase.NewListNetworks(cfg, resolver)
		result, err := uc.Run(ctx, usecase.ListNetworksParams{FetchChainIDs: true})

		require.NoError(t, err)
		assert.Equal(t, uint64(31337), result.Networks[0].ChainID)
		assert.EqualError(t, result.Networks[1].Error, "connection refused")
	})
}
