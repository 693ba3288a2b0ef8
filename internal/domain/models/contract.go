package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract represents a compiled contract discovered in the artifacts directory
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// Key returns the fully qualified "path:Name" reference
func (c *Contract) Key() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// IsDeployable reports whether the artifact carries creation bytecode
func (c *Contract) IsDeployable() bool {
	return c.Artifact != nil && !c.Artifact.NeedsLinking() && len(c.Artifact.CreationCode()) > 0
}

// BytecodeObject holds bytecode information. Foundry emits an object with
// an "object" field while Hardhat emits a plain hex string.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the Foundry object form and the Hardhat string form
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		b.Object = hex
		return nil
	}

	type plain BytecodeObject
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BytecodeObject(obj)
	return nil
}

// Artifact represents a compilation artifact (Foundry or Hardhat layout)
type Artifact struct {
	// Hardhat fields
	Format       string `json:"_format,omitempty"`
	ContractName string `json:"contractName,omitempty"`
	SourceName   string `json:"sourceName,omitempty"`

	ABI              json.RawMessage  `json:"abi"`
	Bytecode         BytecodeObject   `json:"bytecode"`
	DeployedBytecode BytecodeObject   `json:"deployedBytecode"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata is the subset of Foundry's metadata section we read
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// UnmarshalJSON tolerates Hardhat's absent metadata and Foundry's stringified metadata
func (m *ArtifactMetadata) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw == "" {
			return nil
		}
		data = []byte(raw)
	}

	type plain ArtifactMetadata
	var meta plain
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	*m = ArtifactMetadata(meta)
	return nil
}

// CreationCode returns the decoded creation bytecode, or nil when absent
func (a *Artifact) CreationCode() []byte {
	object := strings.TrimPrefix(a.Bytecode.Object, "0x")
	if object == "" {
		return nil
	}
	return common.FromHex(object)
}

// NeedsLinking reports unresolved library placeholders in the creation bytecode
func (a *Artifact) NeedsLinking() bool {
	return strings.Contains(a.Bytecode.Object, "__")
}

// ParsedABI parses the artifact ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact has no ABI")
	}
	parsed, err := abi.JSON(strings.NewReader(string(a.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}

// Target returns the source path and contract name this artifact was compiled for
func (a *Artifact) Target() (source string, name string) {
	if a.ContractName != "" && a.SourceName != "" {
		return a.SourceName, a.ContractName
	}
	for s, n := range a.Metadata.Settings.CompilationTarget {
		return s, n
	}
	return "", ""
}
