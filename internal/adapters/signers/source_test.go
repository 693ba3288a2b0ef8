package signers

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
)

const (
	key0 = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	key1 = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	addr0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	addr1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func newTestSource(project *config.ProjectConfig, privateKey string) *Source {
	return NewSource(&config.RuntimeConfig{
		ProjectConfig: project,
		PrivateKey:    privateKey,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSigners(t *testing.T) {
	ctx := context.Background()

	t.Run("no accounts", func(t *testing.T) {
		signers, err := newTestSource(&config.ProjectConfig{}, "").Signers(ctx)
		require.NoError(t, err)
		assert.Empty(t, signers)
	})

	t.Run("private key accounts sorted by name", func(t *testing.T) {
		source := newTestSource(&config.ProjectConfig{
			Accounts: map[string]config.AccountConfig{
				"zeta":  {Type: config.AccountTypePrivateKey, PrivateKey: key0},
				"alpha": {Type: config.AccountTypePrivateKey, PrivateKey: key1},
			},
		}, "")

		signers, err := source.Signers(ctx)
		require.NoError(t, err)
		require.Len(t, signers, 2)
		assert.Equal(t, "alpha", signers[0].Name)
		assert.Equal(t, addr1, signers[0].Address)
		assert.Equal(t, "zeta", signers[1].Name)
		assert.Equal(t, addr0, signers[1].Address)
	})

	t.Run("default account first", func(t *testing.T) {
		source := newTestSource(&config.ProjectConfig{
			DefaultAccount: "zeta",
			Accounts: map[string]config.AccountConfig{
				"zeta":  {Type: config.AccountTypePrivateKey, PrivateKey: key0},
				"alpha": {Type: config.AccountTypePrivateKey, PrivateKey: key1},
			},
		}, "")

		signers, err := source.Signers(ctx)
		require.NoError(t, err)
		require.Len(t, signers, 2)
		assert.Equal(t, "zeta", signers[0].Name)
		assert.Equal(t, "alpha", signers[1].Name)
	})

	t.Run("env private key", func(t *testing.T) {
		signers, err := newTestSource(nil, key0).Signers(ctx)
		require.NoError(t, err)
		require.Len(t, signers, 1)
		assert.Equal(t, EnvAccountName, signers[0].Name)
		assert.Equal(t, addr0, signers[0].Address)
	})

	t.Run("transactor is bound to chain", func(t *testing.T) {
		signers, err := newTestSource(nil, key0).Signers(ctx)
		require.NoError(t, err)

		opts, err := signers[0].Transactor(big.NewInt(1337))
		require.NoError(t, err)
		assert.Equal(t, addr0, opts.From)
		assert.NotNil(t, opts.Signer)
	})

	t.Run("keystore account", func(t *testing.T) {
		dir := t.TempDir()
		ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
		key, err := crypto.HexToECDSA(key0)
		require.NoError(t, err)
		account, err := ks.ImportECDSA(key, "secret")
		require.NoError(t, err)

		source := newTestSource(&config.ProjectConfig{
			Accounts: map[string]config.AccountConfig{
				"deployer": {Type: config.AccountTypeKeystore, Path: account.URL.Path, Password: "secret"},
			},
		}, "")

		signers, err := source.Signers(ctx)
		require.NoError(t, err)
		require.Len(t, signers, 1)
		assert.Equal(t, addr0, signers[0].Address)

		source = newTestSource(&config.ProjectConfig{
			Accounts: map[string]config.AccountConfig{
				"deployer": {Type: config.AccountTypeKeystore, Path: account.URL.Path, Password: "wrong"},
			},
		}, "")
		_, err = source.Signers(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt keystore")
	})

	t.Run("invalid key material", func(t *testing.T) {
		tests := []struct {
			name    string
			account config.AccountConfig
			wantErr string
		}{
			{
				name:    "bad hex",
				account: config.AccountConfig{Type: config.AccountTypePrivateKey, PrivateKey: "0xnothex"},
				wantErr: "invalid private key",
			},
			{
				name:    "empty key",
				account: config.AccountConfig{Type: config.AccountTypePrivateKey},
				wantErr: "private key not configured",
			},
			{
				name:    "missing keystore path",
				account: config.AccountConfig{Type: config.AccountTypeKeystore},
				wantErr: "keystore path not configured",
			},
			{
				name:    "missing keystore file",
				account: config.AccountConfig{Type: config.AccountTypeKeystore, Path: "/does/not/exist.json"},
				wantErr: "failed to read keystore",
			},
			{
				name:    "unknown type",
				account: config.AccountConfig{Type: "ledger"},
				wantErr: "unsupported account type: ledger",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				source := newTestSource(&config.ProjectConfig{
					Accounts: map[string]config.AccountConfig{"broken": tt.account},
				}, "")

				_, err := source.Signers(ctx)
				require.Error(t, err)
				assert.Contains(t, err.Error(), "account broken")
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}
