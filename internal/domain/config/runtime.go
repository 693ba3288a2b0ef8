package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string
	BuildCommand string

	// Context settings
	Network *Network // nil if not specified

	// Signer selection
	Signer     string // account name to deploy from, first account when empty
	PrivateKey string //nolint:gosec // key passed through --private-key or FTDEPLOY_PRIVATE_KEY

	// Execution settings
	Debug          bool
	NonInteractive bool
	Build          bool
	Timeout        time.Duration

	// Resolved configurations
	ProjectConfig *ProjectConfig
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
