package cli

import (
	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/cli/render"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var checkCode bool

	cmd := &cobra.Command{
		Use:   "show <deployment>",
		Short: "Show a recorded deployment",
		Long: `Show detailed information about a recorded deployment.

You can specify deployments using:
- Contract or display name: "WrappedFriendtech" (latest on the network)
- Contract address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
- Full deployment ID: "31337/WrappedFriendtech/0x5fbd..."

With --check the network is queried to confirm code is still present at
the recorded address.`,
		Example: `  ftdeploy show WrappedFriendtech
  ftdeploy show 0x5FbDB2315678afecb367f032d93F642f64180aa3 --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Ref:       args[0],
				CheckCode: checkCode,
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderDeployment(result)
		},
	}

	cmd.Flags().BoolVar(&checkCode, "check", false, "Check that code exists at the recorded address")

	return cmd
}
