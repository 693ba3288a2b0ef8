package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

const (
	DeploymentsFile = "deployments.json"
)

// FileRepository stores deployments in a json file inside the project data directory
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
	// chainID -> lowercase address -> deployment ID
	byAddress map[uint64]map[string]string
}

// NewFileRepository creates a registry backed by <dataDir>/deployments.json
func NewFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	m := &FileRepository{
		dataDir:     cfg.DataDir,
		deployments: make(map[string]*models.Deployment),
		byAddress:   make(map[uint64]map[string]string),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// load reads the registry file; a missing file is an empty registry
func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, &m.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", m.path(), err)
	}
	if m.deployments == nil {
		m.deployments = make(map[string]*models.Deployment)
	}

	m.rebuildLookups()
	return nil
}

func (m *FileRepository) path() string {
	return filepath.Join(m.dataDir, DeploymentsFile)
}

// save writes the registry file through a temp file and an atomic rename
func (m *FileRepository) save() error {
	if err := os.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dataDir, err)
	}

	data, err := json.MarshalIndent(m.deployments, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := m.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, m.path())
}

func (m *FileRepository) rebuildLookups() {
	m.byAddress = make(map[uint64]map[string]string)
	for id, dep := range m.deployments {
		m.index(id, dep)
	}
}

func (m *FileRepository) index(id string, dep *models.Deployment) {
	if m.byAddress[dep.ChainID] == nil {
		m.byAddress[dep.ChainID] = make(map[string]string)
	}
	m.byAddress[dep.ChainID][strings.ToLower(dep.Address)] = id
}

// GetDeployment retrieves a deployment by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[id]
	if !exists {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}

	clone := *dep
	return &clone, nil
}

// GetDeploymentByAddress retrieves a deployment by chain ID and address
func (m *FileRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byAddress[chainID][strings.ToLower(address)]
	if !exists {
		return nil, fmt.Errorf("deployment at address %s on chain %d: %w", address, chainID, domain.ErrNotFound)
	}

	clone := *m.deployments[id]
	return &clone, nil
}

// ListDeployments retrieves deployments matching the filter, oldest first
func (m *FileRepository) ListDeployments(ctx context.Context, filter usecase.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Deployment, 0, len(m.deployments))
	for _, dep := range m.deployments {
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName && dep.DisplayName != filter.ContractName {
			continue
		}
		if filter.Network != "" && dep.Network != filter.Network {
			continue
		}

		clone := *dep
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// SaveDeployment records a new deployment
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if deployment.ID == "" {
		return fmt.Errorf("deployment has no ID")
	}
	if _, exists := m.deployments[deployment.ID]; exists {
		return fmt.Errorf("deployment %s already recorded", deployment.ID)
	}

	clone := *deployment
	m.deployments[deployment.ID] = &clone
	m.index(deployment.ID, &clone)

	if err := m.save(); err != nil {
		delete(m.deployments, deployment.ID)
		m.rebuildLookups()
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// Ensure the adapter implements the port
var _ usecase.DeploymentRepository = (*FileRepository)(nil)
