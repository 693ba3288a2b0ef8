package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
)

// loadProjectConfig loads and parses ftdeploy.toml if it exists.
// Returns an empty config when the file does not exist.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	cfg := &config.ProjectConfig{}

	path := filepath.Join(projectRoot, config.ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.Scripts = config.DefaultScripts()
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", config.ProjectFileName, err)
	}

	// Configured scripts are layered over the built-in ones
	scripts := config.DefaultScripts()
	for name, script := range cfg.Scripts {
		if script.Contract == "" {
			return nil, fmt.Errorf("script %s: contract is required", name)
		}
		scripts[name] = script
	}
	cfg.Scripts = scripts

	// Expand environment variables in network and account string fields
	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = network
	}
	for name, account := range cfg.Accounts {
		if account.Type == "" {
			return nil, fmt.Errorf("account %s: type is required", name)
		}
		account.PrivateKey = os.ExpandEnv(account.PrivateKey)
		account.Path = os.ExpandEnv(account.Path)
		account.Password = os.ExpandEnv(account.Password)
		if account.Path != "" && !filepath.IsAbs(account.Path) {
			account.Path = filepath.Join(projectRoot, account.Path)
		}
		cfg.Accounts[name] = account
	}

	return cfg, nil
}
