package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	projectRoot   string
	artifactsDir  string
	buildCommand  string
	build         bool
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:   cfg.ProjectRoot,
		artifactsDir:  cfg.ArtifactsDir,
		buildCommand:  cfg.BuildCommand,
		build:         cfg.Build,
		log:           log.With("component", "contracts"),
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts, running the build command first when requested
func (r *Repository) Index(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.Contract)
	r.contractNames = make(map[string][]*models.Contract)

	if r.build && r.buildCommand != "" {
		if err := r.runBuild(ctx); err != nil {
			return fmt.Errorf("failed to build contracts: %w", err)
		}
	}

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found (compile the contracts or pass --build)", r.relative(r.artifactsDir))
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.contracts))
	r.indexed = true
	return nil
}

// runBuild runs the configured compile command in the project root
func (r *Repository) runBuild(ctx context.Context) error {
	fields := strings.Fields(r.buildCommand)
	r.log.Debug("running build", "command", r.buildCommand)

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = r.projectRoot

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", r.buildCommand, err, string(output))
	}

	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		r.log.Debug("skipping unreadable artifact", "path", artifactPath, "error", err)
		return nil
	}

	// Not a compilation artifact
	if len(artifact.ABI) == 0 {
		return nil
	}

	sourceName, contractName := artifact.Target()
	if contractName == "" {
		// Foundry layout without metadata: out/<File>.sol/<Name>.json
		contractName = strings.TrimSuffix(filepath.Base(artifactPath), ".json")
		if idx := strings.Index(contractName, "."); idx > 0 {
			contractName = contractName[:idx]
		}
		sourceName = filepath.Base(filepath.Dir(artifactPath))
	}

	info := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: r.relative(artifactPath),
		Artifact:     &artifact,
	}

	key := info.Key()
	if _, exists := r.contracts[key]; exists {
		// Same contract compiled by several solc versions
		return nil
	}
	r.contracts[key] = info
	r.contractNames[info.Name] = append(r.contractNames[info.Name], info)

	return nil
}

func (r *Repository) relative(path string) string {
	if rel, err := filepath.Rel(r.projectRoot, path); err == nil {
		return rel
	}
	return path
}

// GetContract retrieves a contract by name or "path:name"
func (r *Repository) GetContract(ctx context.Context, ref string) (*models.Contract, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if path, name, ok := strings.Cut(ref, ":"); ok {
		if contract, exists := r.contracts[ref]; exists {
			return contract, nil
		}
		// Allow a path suffix, e.g. "WrappedFriendtech.sol:WrappedFriendtech"
		var matches []*models.Contract
		for _, contract := range r.contractNames[name] {
			if strings.HasSuffix(contract.Path, path) {
				matches = append(matches, contract)
			}
		}
		return pick(ref, matches)
	}

	return pick(ref, r.contractNames[ref])
}

func pick(ref string, matches []*models.Contract) (*models.Contract, error) {
	switch len(matches) {
	case 0:
		return nil, domain.NoContractsMatchErr{Query: ref}
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousContractErr{Query: ref, Matches: matches}
	}
}

// ListContracts returns all indexed contracts sorted by key
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := make([]*models.Contract, 0, len(r.contracts))
	for _, contract := range r.contracts {
		contracts = append(contracts, contract)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].Key() < contracts[j].Key()
	})
	return contracts, nil
}

// Ensure the adapter implements the port
var _ usecase.ContractRepository = (*Repository)(nil)
