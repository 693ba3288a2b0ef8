package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func testDeployment(name, display, network string, chainID uint64, address string, createdAt time.Time) *models.Deployment {
	return &models.Deployment{
		ID:              "31337/" + name + "/" + address,
		ChainID:         chainID,
		Network:         network,
		ContractName:    name,
		DisplayName:     display,
		Address:         address,
		Method:          models.DeploymentMethodCreate,
		Deployer:        "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		TransactionHash: "0x8f3b4ab2e1c0d6f7a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8e7f6",
		BlockNumber:     7,
		GasUsed:         21000,
		CreatedAt:       createdAt,
	}
}

func TestDeployedLine(t *testing.T) {
	assert.Equal(t,
		"WrappedFriendTech contract is deployed. Contract address: 0x5FbDB2315678afecb367f032d93F642f64180aa3",
		DeployedLine("WrappedFriendTech", "0x5FbDB2315678afecb367f032d93F642f64180aa3"))
}

func TestDeployedRenderer(t *testing.T) {
	t.Run("uses the display name", func(t *testing.T) {
		var buf bytes.Buffer
		dep := testDeployment("FriendtechSharesV1", "FriendtechSharesV1", "localhost", 31337,
			"0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", time.Now())

		err := NewDeployedRenderer(&buf).Render(&usecase.DeployContractResult{Deployment: dep})

		require.NoError(t, err)
		assert.Equal(t, "FriendtechSharesV1 contract is deployed. Contract address: 0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512\n", buf.String())
	})

	t.Run("falls back to the contract name", func(t *testing.T) {
		var buf bytes.Buffer
		dep := testDeployment("WrappedFriendtech", "", "localhost", 31337,
			"0x5FbDB2315678afecb367f032d93F642f64180aa3", time.Now())

		require.NoError(t, NewDeployedRenderer(&buf).Render(&usecase.DeployContractResult{Deployment: dep}))
		assert.Equal(t, "WrappedFriendtech contract is deployed. Contract address: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n", buf.String())
	})

	t.Run("nothing to render", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewDeployedRenderer(&buf).Render(&usecase.DeployContractResult{}))
		assert.Empty(t, buf.String())
	})
}

func TestRenderDeployment(t *testing.T) {
	dep := testDeployment("WrappedFriendtech", "WrappedFriendTech", "localhost", 31337,
		"0x5FbDB2315678afecb367f032d93F642f64180aa3", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	dep.SourcePath = "contracts/WrappedFriendtech.sol"

	var buf bytes.Buffer
	err := NewDeploymentRenderer(&buf, false).RenderDeployment(&usecase.ShowDeploymentResult{
		Deployment: dep,
		Checked:    true,
		HasCode:    true,
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Deployment: "+dep.ID)
	assert.Contains(t, out, "Contract: WrappedFriendTech")
	assert.Contains(t, out, "Artifact: WrappedFriendtech")
	assert.Contains(t, out, "Network: localhost (chain 31337)")
	assert.Contains(t, out, "On-chain: ✅ code present")
	assert.Contains(t, out, "Source: contracts/WrappedFriendtech.sol")
	assert.Contains(t, out, "Created: 2024-03-01 12:00:00")

	buf.Reset()
	require.NoError(t, NewDeploymentRenderer(&buf, false).RenderDeployment(&usecase.ShowDeploymentResult{
		Deployment: dep,
		Checked:    true,
	}))
	assert.Contains(t, buf.String(), "On-chain: ❌ No code at address")
}

func TestRenderDeploymentList(t *testing.T) {
	older := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &usecase.DeploymentListResult{
		Deployments: []*models.Deployment{
			testDeployment("WrappedFriendtech", "WrappedFriendTech", "localhost", 31337,
				"0x5FbDB2315678afecb367f032d93F642f64180aa3", older),
			testDeployment("FriendtechSharesV1", "", "base", 8453,
				"0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", older.Add(time.Hour)),
		},
		Summary: usecase.DeploymentSummary{
			Total:      2,
			ByContract: map[string]int{"WrappedFriendtech": 1, "FriendtechSharesV1": 1},
			ByChain:    map[uint64]int{31337: 1, 8453: 1},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, false).RenderDeploymentList(result, FormatTable))

		out := buf.String()
		assert.Contains(t, out, "Base")
		assert.Contains(t, out, "Localhost")
		assert.Contains(t, out, "31337")
		assert.Contains(t, out, "WrappedFriendTech")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, out, "Total deployments: 2")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Base")), bytes.Index(buf.Bytes(), []byte("Localhost")))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, false).RenderDeploymentList(result, FormatJSON))

		out := buf.String()
		assert.Contains(t, out, `"contract": "WrappedFriendtech"`)
		assert.Contains(t, out, `"displayName": "WrappedFriendTech"`)
		assert.Contains(t, out, `"total": 2`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, false).RenderDeploymentList(result, FormatYAML))

		var decoded listView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Deployments, 2)
		assert.Equal(t, "FriendtechSharesV1", decoded.Deployments[1].Contract)
		assert.Equal(t, uint64(8453), decoded.Deployments[1].ChainID)
		assert.Equal(t, 1, decoded.ByChain[31337])
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, false).RenderDeploymentList(&usecase.DeploymentListResult{}, FormatTable))
		assert.Equal(t, "No deployments found\n", buf.String())
	})
}

func TestRenderNetworksList(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf, false).RenderNetworksList(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "base", RPCURL: "https://mainnet.base.org", ChainID: 8453},
			{Name: "broken", RPCURL: "http://127.0.0.1:1", Error: errors.New("connection refused")},
			{Name: "localhost", RPCURL: "http://127.0.0.1:8545"},
		},
		Current: "base",
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "* ✅ base - Chain ID: 8453")
	assert.Contains(t, out, "❌ broken - Error: connection refused")
	assert.Contains(t, out, "localhost - http://127.0.0.1:8545")
}

func TestRenderContracts(t *testing.T) {
	contract := &models.Contract{
		Name: "WrappedFriendtech",
		Path: "contracts/WrappedFriendtech.sol",
		Artifact: &models.Artifact{
			ABI:      []byte(`[{"type":"constructor","inputs":[{"name":"shares","type":"address"}],"stateMutability":"nonpayable"}]`),
			Bytecode: models.BytecodeObject{Object: "0x6001600c60003960016000f300"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewContractsRenderer(&buf, false).RenderContracts(&usecase.ListContractsResult{
		Contracts: []*models.Contract{contract},
	}))

	out := buf.String()
	assert.Contains(t, out, "WrappedFriendtech")
	assert.Contains(t, out, "contracts/WrappedFriendtech.sol")
	assert.Contains(t, out, "(address shares)")
	assert.Contains(t, out, "Total contracts: 1")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				var formatErr *InvalidFormatError
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "❌ Connection refused", FormatError("failed to connect: connection refused"))
	assert.Equal(t, "✅ done", FormatSuccess("done"))
	assert.Equal(t, "⚠️  not recorded", FormatWarning("not recorded"))
	assert.Equal(t, "0x8f3b…e7f6", ShortHash("0x8f3b4ab2e1c0d6f7a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8e7f6"))
	assert.Equal(t, "0x1234", ShortHash("0x1234"))
	assert.Equal(t, "plain", stripAnsiCodes("\x1b[32mplain\x1b[0m"))
}
