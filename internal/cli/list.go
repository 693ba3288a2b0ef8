package cli

import (
	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/cli/render"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		chainID      uint64
		allNetworks  bool
		format       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployments recorded in .ftdeploy/deployments.json.

By default only deployments on the selected network are listed; use --all
to list every network.`,
		Example: `  # List deployments on the current network
  ftdeploy list

  # List every WrappedFriendtech deployment as JSON
  ftdeploy list --all --contract WrappedFriendtech --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			outputFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				ContractName: contractName,
				ChainID:      chainID,
			}
			if !allNetworks && app.Config.Network != nil {
				params.Network = app.Config.Network.Name
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderDeploymentList(result, outputFormat)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract or display name")
	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Filter by chain ID")
	cmd.Flags().BoolVar(&allNetworks, "all", false, "List deployments on every network")
	cmd.Flags().StringVar(&format, "format", string(render.FormatTable), "Output format (table, json, yaml)")

	return cmd
}
