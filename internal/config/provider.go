package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/network"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/config"
)

// DataDirName is the per-project directory holding the deployment registry
const DataDirName = ".ftdeploy"

// DefaultTimeout bounds a whole run, including the confirmation wait
const DefaultTimeout = 5 * time.Minute

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	projectConfig, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		ArtifactsDir:   resolveArtifactsDir(projectRoot, projectConfig, foundryConfig),
		BuildCommand:   projectConfig.Build,
		Signer:         v.GetString("signer"),
		PrivateKey:     v.GetString("private_key"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Build:          v.GetBool("build"),
		Timeout:        v.GetDuration("timeout"),
		ProjectConfig:  projectConfig,
		FoundryConfig:  foundryConfig,
	}

	if cfg.Signer == "" {
		cfg.Signer = projectConfig.DefaultAccount
	}

	// Resolve the target network: flag/env first, then the project default
	networkName := v.GetString("network")
	if networkName == "" {
		networkName = projectConfig.DefaultNetwork
	}
	if networkName == "" {
		networkName = network.LocalhostNetwork
	}

	resolver := network.NewResolver(projectConfig, foundryConfig)
	resolved, err := resolver.ResolveNetwork(context.Background(), networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = resolved

	return cfg, nil
}

// resolveArtifactsDir picks the directory holding compiled artifacts:
// the configured one, foundry's out dir, or hardhat's artifacts dir
func resolveArtifactsDir(projectRoot string, project *config.ProjectConfig, foundry *config.FoundryConfig) string {
	if project.Artifacts != "" {
		if filepath.IsAbs(project.Artifacts) {
			return project.Artifacts
		}
		return filepath.Join(projectRoot, project.Artifacts)
	}

	if foundry != nil {
		// FOUNDRY_PROFILE selects the profile like forge does, falling back to default
		for _, name := range []string{os.Getenv("FOUNDRY_PROFILE"), "default"} {
			if profile, ok := foundry.Profile[name]; ok && profile.OutPath != "" {
				return filepath.Join(projectRoot, profile.OutPath)
			}
		}
	}

	out := filepath.Join(projectRoot, "out")
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return out
	}
	return filepath.Join(projectRoot, "artifacts")
}

// FindProjectRoot walks up from current directory to find ftdeploy.toml,
// foundry.toml or a hardhat config
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	markers := []string{config.ProjectFileName, "foundry.toml", "hardhat.config.ts", "hardhat.config.js"}
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a deployment project (%s, foundry.toml or hardhat config not found)", config.ProjectFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("FTDEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("build", false)
	v.SetDefault("project_root", projectRoot)

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
