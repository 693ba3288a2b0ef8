package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// ContractsRenderer renders the contracts found in the artifacts directory
type ContractsRenderer struct {
	out   io.Writer
	color bool
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer, color bool) *ContractsRenderer {
	return &ContractsRenderer{
		out:   out,
		color: color,
	}
}

// RenderContracts renders a contract table
func (r *ContractsRenderer) RenderContracts(result *usecase.ListContractsResult) error {
	if len(result.Contracts) == 0 {
		fmt.Fprintln(r.out, "No deployable contracts found (run with --build to compile first)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Contract", "Source", "Constructor"})

	for _, contract := range result.Contracts {
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprint(contract.Name),
			contract.Path,
			constructorSignature(contract),
		})
	}
	t.Render()

	fmt.Fprintf(r.out, "\nTotal contracts: %d\n", len(result.Contracts))
	return nil
}

func constructorSignature(contract *models.Contract) string {
	if contract.Artifact == nil {
		return ""
	}
	if !contract.IsDeployable() {
		return color.New(color.Faint).Sprint("not deployable")
	}
	parsed, err := contract.Artifact.ParsedABI()
	if err != nil {
		return "?"
	}
	inputs := make([]string, 0, len(parsed.Constructor.Inputs))
	for _, input := range parsed.Constructor.Inputs {
		inputs = append(inputs, strings.TrimSpace(input.Type.String()+" "+input.Name))
	}
	return "(" + strings.Join(inputs, ", ") + ")"
}
