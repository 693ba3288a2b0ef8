package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
)

// RunScriptParams contains parameters for running a configured script
type RunScriptParams struct {
	ScriptName string
	Signer     string
	// Args replace the configured constructor arguments when non-empty
	Args []string
}

// RunScriptResult contains the result of running a script
type RunScriptResult struct {
	Script     config.ScriptConfig
	Deployment *DeployContractResult
	Success    bool
	Error      error
}

// RunScript resolves a named script entry and runs its deployment
type RunScript struct {
	config   *config.RuntimeConfig
	deployer *DeployContract
}

// NewRunScript creates a new RunScript use case
func NewRunScript(cfg *config.RuntimeConfig, deployer *DeployContract) *RunScript {
	return &RunScript{
		config:   cfg,
		deployer: deployer,
	}
}

// Run executes the script with the given parameters
func (uc *RunScript) Run(ctx context.Context, params RunScriptParams) (*RunScriptResult, error) {
	script, err := uc.resolveScript(params.ScriptName)
	if err != nil {
		return nil, err
	}

	result := &RunScriptResult{
		Script: script,
	}

	args := script.Args
	if len(params.Args) > 0 {
		args = params.Args
	}

	deployment, err := uc.deployer.Run(ctx, DeployContractParams{
		Contract:    script.Contract,
		DisplayName: script.DisplayName(),
		Signer:      params.Signer,
		Args:        args,
	})
	if err != nil {
		result.Error = fmt.Errorf("script %s failed: %w", params.ScriptName, err)
		return result, nil
	}

	result.Deployment = deployment
	result.Success = true
	return result, nil
}

// ScriptNames returns the configured script names in sorted order
func (uc *RunScript) ScriptNames() []string {
	var names []string
	if uc.config.ProjectConfig != nil {
		for name := range uc.config.ProjectConfig.Scripts {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (uc *RunScript) resolveScript(name string) (config.ScriptConfig, error) {
	if uc.config.ProjectConfig != nil {
		if script, ok := uc.config.ProjectConfig.Scripts[name]; ok {
			return script, nil
		}
	}
	return config.ScriptConfig{}, fmt.Errorf("%w: %s (available: %v)", domain.ErrScriptNotFound, name, uc.ScriptNames())
}
