package cli

import (
	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/cli/render"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "List deployable contracts from the artifacts directory",
		Long: `List the contracts found in the compiled artifacts (Foundry "out" or
Hardhat "artifacts"). Pass --build to compile first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListContracts.Run(cmd.Context(), usecase.ListContractsParams{
				IncludeAbstract: all,
			})
			if err != nil {
				return err
			}

			renderer := render.NewContractsRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderContracts(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include interfaces, abstract contracts and unlinked artifacts")

	return cmd
}
