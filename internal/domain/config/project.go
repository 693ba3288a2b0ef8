package config

// ProjectFileName is the project configuration file looked up from the working directory
const ProjectFileName = "ftdeploy.toml"

// ProjectConfig represents the full ftdeploy.toml configuration file
type ProjectConfig struct {
	Artifacts      string                   `toml:"artifacts,omitempty"`
	Build          string                   `toml:"build,omitempty"`
	DefaultNetwork string                   `toml:"default_network,omitempty"`
	DefaultAccount string                   `toml:"default_account,omitempty"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	Accounts       map[string]AccountConfig `toml:"accounts"`
	Scripts        map[string]ScriptConfig  `toml:"scripts"`
}

// NetworkConfig represents a [networks.<name>] section
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
}

type AccountType string

var (
	AccountTypePrivateKey AccountType = "private_key"
	AccountTypeKeystore   AccountType = "keystore"
)

// AccountConfig represents an [accounts.<name>] section
type AccountConfig struct {
	Type       AccountType `toml:"type"`
	PrivateKey string      `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Path       string      `toml:"path,omitempty"`        // For keystore accounts
	Password   string      `toml:"password,omitempty"`    //nolint:gosec // For keystore accounts
}

// ScriptConfig represents a [scripts.<name>] section: one deployment flow
type ScriptConfig struct {
	Contract string   `toml:"contract"`
	Display  string   `toml:"display,omitempty"`
	Args     []string `toml:"args,omitempty"`
}

// DisplayName returns the name printed once the contract is deployed
func (s ScriptConfig) DisplayName() string {
	if s.Display != "" {
		return s.Display
	}
	return s.Contract
}

// DefaultScripts returns the built-in deploy and deploy_FriendtechShare scripts
func DefaultScripts() map[string]ScriptConfig {
	return map[string]ScriptConfig{
		"deploy": {
			Contract: "WrappedFriendtech",
			Display:  "WrappedFriendTech",
		},
		"deploy_FriendtechShare": {
			Contract: "FriendtechSharesV1",
		},
	}
}
