package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// DeploymentRenderer renders a single deployment
type DeploymentRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, color bool) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:   out,
		color: color,
	}
}

// DeployedLine is the line announcing a confirmed deployment. Scripts parse
// it, so it never carries color.
func DeployedLine(display, address string) string {
	return fmt.Sprintf("%s contract is deployed. Contract address: %s", display, address)
}

// RenderDeployed writes the deployed line for a finished run
func (r *DeploymentRenderer) RenderDeployed(result *usecase.DeployContractResult) error {
	if result == nil || result.Deployment == nil {
		return fmt.Errorf("no deployment to render")
	}
	_, err := fmt.Fprintln(r.out, DeployedLine(result.Deployment.ContractDisplayName(), result.Deployment.Address))
	return err
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(result *usecase.ShowDeploymentResult) error {
	deployment := result.Deployment

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", deployment.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(deployment.ContractDisplayName()))
	if deployment.DisplayName != "" && deployment.DisplayName != deployment.ContractName {
		fmt.Fprintf(r.out, "  Artifact: %s\n", deployment.ContractName)
	}
	fmt.Fprintf(r.out, "  Address: %s\n", deployment.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", deployment.Network, deployment.ChainID)
	if result.Checked {
		if result.HasCode {
			fmt.Fprintf(r.out, "  On-chain: %s\n", FormatSuccess("code present"))
		} else {
			fmt.Fprintf(r.out, "  On-chain: %s\n", FormatError("no code at address"))
		}
	}

	fmt.Fprintln(r.out, "\nTransaction:")
	fmt.Fprintf(r.out, "  Method: %s\n", deployment.Method)
	fmt.Fprintf(r.out, "  Hash: %s\n", deployment.TransactionHash)
	fmt.Fprintf(r.out, "  Deployer: %s\n", deployment.Deployer)
	fmt.Fprintf(r.out, "  Block: %d\n", deployment.BlockNumber)
	fmt.Fprintf(r.out, "  Gas Used: %d\n", deployment.GasUsed)
	if deployment.ConstructorArgs != "" {
		fmt.Fprintf(r.out, "  Constructor Args: %s\n", deployment.ConstructorArgs)
	}

	if deployment.ArtifactPath != "" || deployment.SourcePath != "" {
		fmt.Fprintln(r.out, "\nArtifact:")
		if deployment.SourcePath != "" {
			fmt.Fprintf(r.out, "  Source: %s\n", deployment.SourcePath)
		}
		if deployment.ArtifactPath != "" {
			fmt.Fprintf(r.out, "  Path: %s\n", deployment.ArtifactPath)
		}
	}

	fmt.Fprintf(r.out, "\nCreated: %s\n", deployment.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

var _ Renderer[*usecase.DeployContractResult] = (*deployedRenderer)(nil)

// deployedRenderer adapts RenderDeployed to the generic Renderer interface
type deployedRenderer struct {
	*DeploymentRenderer
}

func (r deployedRenderer) Render(result *usecase.DeployContractResult) error {
	return r.RenderDeployed(result)
}

// NewDeployedRenderer returns a Renderer printing the deployed line
func NewDeployedRenderer(out io.Writer) Renderer[*usecase.DeployContractResult] {
	return &deployedRenderer{NewDeploymentRenderer(out, false)}
}

// deploymentLabel is the table label for a deployment
func deploymentLabel(dep *models.Deployment) string {
	return color.New(color.FgGreen, color.Bold).Sprint(dep.ContractDisplayName())
}
