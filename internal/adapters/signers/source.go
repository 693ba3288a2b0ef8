package signers

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// EnvAccountName names the signer built from --private-key / FTDEPLOY_PRIVATE_KEY
const EnvAccountName = "env"

// Source builds signer identities from configured accounts
type Source struct {
	accounts       map[string]config.AccountConfig
	defaultAccount string
	privateKey     string
	log            *slog.Logger
}

// NewSource creates a signer source from the runtime configuration
func NewSource(cfg *config.RuntimeConfig, log *slog.Logger) *Source {
	s := &Source{
		privateKey: cfg.PrivateKey,
		log:        log.With("component", "signers"),
	}
	if cfg.ProjectConfig != nil {
		s.accounts = cfg.ProjectConfig.Accounts
		s.defaultAccount = cfg.ProjectConfig.DefaultAccount
	}
	return s
}

// Signers returns every configured signer: the default account first, the
// rest ordered by name
func (s *Source) Signers(ctx context.Context) ([]*models.Signer, error) {
	names := make([]string, 0, len(s.accounts)+1)
	for name := range s.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	var signers []*models.Signer
	for _, name := range names {
		signer, err := s.load(name, s.accounts[name])
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	if s.privateKey != "" {
		if _, exists := s.accounts[EnvAccountName]; !exists {
			signer, err := fromPrivateKey(EnvAccountName, s.privateKey)
			if err != nil {
				return nil, err
			}
			signers = append(signers, signer)
		}
	}

	if s.defaultAccount != "" {
		sort.SliceStable(signers, func(i, j int) bool {
			return signers[i].Name == s.defaultAccount && signers[j].Name != s.defaultAccount
		})
	}

	s.log.Debug("loaded signers", "count", len(signers))
	return signers, nil
}

func (s *Source) load(name string, account config.AccountConfig) (*models.Signer, error) {
	switch account.Type {
	case config.AccountTypePrivateKey:
		if account.PrivateKey == "" {
			return nil, fmt.Errorf("account %s: private key not configured", name)
		}
		return fromPrivateKey(name, account.PrivateKey)

	case config.AccountTypeKeystore:
		if account.Path == "" {
			return nil, fmt.Errorf("account %s: keystore path not configured", name)
		}
		return fromKeystore(name, account.Path, account.Password)

	default:
		return nil, fmt.Errorf("account %s: unsupported account type: %s", name, account.Type)
	}
}

func fromPrivateKey(name, hexKey string) (*models.Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("account %s: invalid private key: %w", name, err)
	}
	return newSigner(name, key), nil
}

func fromKeystore(name, path, password string) (*models.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("account %s: failed to read keystore: %w", name, err)
	}

	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("account %s: failed to decrypt keystore: %w", name, err)
	}
	return newSigner(name, key.PrivateKey), nil
}

func newSigner(name string, key *ecdsa.PrivateKey) *models.Signer {
	return &models.Signer{
		Name:    name,
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Transactor: func(chainID *big.Int) (*bind.TransactOpts, error) {
			return bind.NewKeyedTransactorWithChainID(key, chainID)
		},
	}
}

// Ensure the adapter implements the port
var _ usecase.SignerSource = (*Source)(nil)
