package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Color styles for table format
var (
	networkBg         = color.BgYellow
	chainBg           = color.BgCyan
	networkHeader     = color.New(networkBg, color.FgBlack)
	networkHeaderBold = color.New(networkBg, color.FgBlack, color.Bold)
	chainHeader       = color.New(chainBg, color.FgBlack)
	chainHeaderBold   = color.New(chainBg, color.FgBlack, color.Bold)
	addressStyle      = color.New(color.FgWhite)
	hashStyle         = color.New(color.FgCyan)
	timestampStyle    = color.New(color.Faint)
)

type TableData [][]string

// DeploymentsRenderer renders deployment lists
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// deploymentView is the exported shape of a deployment for json and yaml output
type deploymentView struct {
	ID              string    `json:"id" yaml:"id"`
	Contract        string    `json:"contract" yaml:"contract"`
	DisplayName     string    `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Address         string    `json:"address" yaml:"address"`
	Network         string    `json:"network" yaml:"network"`
	ChainID         uint64    `json:"chainId" yaml:"chainId"`
	Deployer        string    `json:"deployer" yaml:"deployer"`
	TransactionHash string    `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber" yaml:"blockNumber"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
}

type listView struct {
	Deployments []deploymentView `json:"deployments" yaml:"deployments"`
	Total       int              `json:"total" yaml:"total"`
	ByContract  map[string]int   `json:"byContract" yaml:"byContract"`
	ByChain     map[uint64]int   `json:"byChain" yaml:"byChain"`
}

// RenderDeploymentList renders deployments in the requested format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r.view(result), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal deployments: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(r.view(result)); err != nil {
			return fmt.Errorf("failed to marshal deployments: %w", err)
		}
		return enc.Close()
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	r.displayTableFormat(result.Deployments)
	return nil
}

func (r *DeploymentsRenderer) view(result *usecase.DeploymentListResult) listView {
	return listView{
		Deployments: lo.Map(result.Deployments, func(dep *models.Deployment, _ int) deploymentView {
			return deploymentView{
				ID:              dep.ID,
				Contract:        dep.ContractName,
				DisplayName:     dep.DisplayName,
				Address:         dep.Address,
				Network:         dep.Network,
				ChainID:         dep.ChainID,
				Deployer:        dep.Deployer,
				TransactionHash: dep.TransactionHash,
				BlockNumber:     dep.BlockNumber,
				CreatedAt:       dep.CreatedAt,
			}
		}),
		Total:      result.Summary.Total,
		ByContract: result.Summary.ByContract,
		ByChain:    result.Summary.ByChain,
	}
}

// displayTableFormat shows deployments grouped by network and chain
func (r *DeploymentsRenderer) displayTableFormat(deployments []*models.Deployment) {
	groups := make(map[string]map[uint64][]*models.Deployment)
	for _, dep := range deployments {
		if groups[dep.Network] == nil {
			groups[dep.Network] = make(map[uint64][]*models.Deployment)
		}
		groups[dep.Network][dep.ChainID] = append(groups[dep.Network][dep.ChainID], dep)
	}

	networks := lo.Keys(groups)
	sort.Strings(networks)

	// Build all tables up front so every group shares column widths
	tables := make(map[string]map[uint64]TableData)
	var allTables []TableData
	for _, name := range networks {
		tables[name] = make(map[uint64]TableData)
		for chainID, deps := range groups[name] {
			data := r.buildDeploymentTable(deps)
			tables[name][chainID] = data
			allTables = append(allTables, data)
		}
	}
	widths := calculateTableColumnWidths(allTables)

	title := cases.Title(language.English)
	for _, name := range networks {
		label := name
		if label == "" {
			label = "unknown"
		}
		networkLabel := fmt.Sprintf("%-12s", "network:")
		networkValue := fmt.Sprintf("%-30s", title.String(label))
		fmt.Fprintln(r.out, networkHeader.Sprintf("   ◎ %s %s", networkLabel, networkHeaderBold.Sprint(networkValue)))

		chainIDs := lo.Keys(groups[name])
		sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

		for idx, chainID := range chainIDs {
			isLast := idx == len(chainIDs)-1
			treePrefix := "├─"
			continuationPrefix := "│ "
			if isLast {
				treePrefix = "└─"
				continuationPrefix = "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30s", fmt.Sprintf("%d", chainID))
			fmt.Fprintf(r.out, "%s%s%s\n", treePrefix,
				chainHeader.Sprintf(" ⛓ %s ", chainLabel),
				chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuationPrefix)

			fmt.Fprint(r.out, renderTableWithWidths(tables[name][chainID], widths, continuationPrefix))
			fmt.Fprintln(r.out)
			if !isLast {
				fmt.Fprintln(r.out, continuationPrefix)
			} else {
				fmt.Fprintln(r.out)
			}
		}
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", len(deployments))
}

// buildDeploymentTable creates a TableData for a list of deployments
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*models.Deployment) TableData {
	sorted := make([]*models.Deployment, len(deployments))
	copy(sorted, deployments)

	// Alphabetical by name, newest first within a name
	sort.SliceStable(sorted, func(i, j int) bool {
		nameI := sorted[i].ContractDisplayName()
		nameJ := sorted[j].ContractDisplayName()
		if nameI == nameJ {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return nameI < nameJ
	})

	tableData := make(TableData, 0, len(sorted))
	for _, dep := range sorted {
		tableData = append(tableData, []string{
			deploymentLabel(dep),
			addressStyle.Sprint(dep.Address),
			hashStyle.Sprint(ShortHash(dep.TransactionHash)),
			timestampStyle.Sprint(dep.CreatedAt.Format("2006-01-02 15:04:05")),
		})
	}
	return tableData
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += 2 + len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, table := range tables {
		for _, row := range table {
			maxCols = max(maxCols, len(row))
		}
	}

	widths := make([]int, maxCols)
	for _, table := range tables {
		for _, row := range table {
			for colIdx, cell := range row {
				widths[colIdx] = max(widths[colIdx], len([]rune(stripAnsiCodes(cell))))
			}
		}
	}
	return widths
}
