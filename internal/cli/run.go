package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/app"
	"github.com/wrappedfriendtech/ftdeploy/internal/cli/render"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var constructorArgs []string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a configured deploy script",
		Long: `Run a deploy script from the [scripts] section of ftdeploy.toml.

Two scripts are always available unless overridden:
  deploy                   deploys WrappedFriendtech
  deploy_FriendtechShare   deploys FriendtechSharesV1

On success a single line is printed:
  <Display> contract is deployed. Contract address: 0x...`,
		Example: `  # Deploy WrappedFriendtech to the default network
  ftdeploy run deploy

  # Deploy FriendtechSharesV1 to base_sepolia from the "ops" account
  ftdeploy run deploy_FriendtechShare --network base_sepolia --signer ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunScript.Run(cmd.Context(), usecase.RunScriptParams{
				ScriptName: args[0],
				Signer:     app.Config.Signer,
				Args:       constructorArgs,
			})
			if err != nil {
				return err
			}
			if result.Error != nil {
				return result.Error
			}
			if !result.Success {
				return fmt.Errorf("script %s failed", args[0])
			}

			return reportDeployment(cmd, app, result.Deployment)
		},
	}

	cmd.Flags().StringArrayVar(&constructorArgs, "arg", nil, "Constructor argument, replaces the script's configured args (repeatable)")

	return cmd
}

// reportDeployment prints the deployed line and warns when the registry write failed
func reportDeployment(cmd *cobra.Command, app *app.App, result *usecase.DeployContractResult) error {
	if err := render.NewDeployedRenderer(cmd.OutOrStdout()).Render(result); err != nil {
		return err
	}
	if result.RecordError != nil {
		app.Log.Debug("record failed", "id", result.Deployment.ID, "error", result.RecordError)
		fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(
			fmt.Sprintf("Deployment confirmed but not recorded: %v", result.RecordError)))
	}
	return nil
}
