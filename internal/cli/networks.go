package cli

import (
	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/cli/render"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List the networks from ftdeploy.toml [networks] and foundry.toml
[rpc_endpoints]. The selected network is marked with '*'.

Chain IDs that are not configured are fetched from each endpoint unless
--offline is passed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{
				FetchChainIDs: !offline,
			})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not query endpoints for chain IDs")

	return cmd
}
