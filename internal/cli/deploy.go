package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wrappedfriendtech/ftdeploy/internal/app"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain"
	"github.com/wrappedfriendtech/ftdeploy/internal/domain/models"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NewDeployCmd creates the ad-hoc deploy command
func NewDeployCmd() *cobra.Command {
	var (
		constructorArgs []string
		displayName     string
	)

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy a single contract",
		Long: `Deploy one contract from the artifacts directory.

The contract can be given as a bare name ("WrappedFriendtech") or as
"path/to/File.sol:Name" when several artifacts share a name. Without an
argument an interactive picker lists the deployable contracts.

Constructor arguments are passed with --arg in declaration order. The
value "deployer" stands for the signer's address in address arguments.`,
		Example: `  # Deploy by name
  ftdeploy deploy WrappedFriendtech

  # Disambiguate and pass constructor arguments
  ftdeploy deploy src/Token.sol:Token --arg deployer --arg 1000000

  # Override the name printed on success
  ftdeploy deploy FriendtechSharesV1 --display Shares`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var contractRef string
			if len(args) > 0 {
				contractRef = args[0]
			} else {
				contractRef, err = pickContract(cmd.Context(), app, nil)
				if err != nil {
					return err
				}
			}

			params := usecase.DeployContractParams{
				Contract:    contractRef,
				DisplayName: displayName,
				Signer:      app.Config.Signer,
				Args:        constructorArgs,
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			var ambiguous domain.AmbiguousContractErr
			if errors.As(err, &ambiguous) && !app.Config.NonInteractive {
				params.Contract, err = pickContract(cmd.Context(), app, ambiguous.Matches)
				if err != nil {
					return err
				}
				result, err = app.DeployContract.Run(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			return reportDeployment(cmd, app, result)
		},
	}

	cmd.Flags().StringArrayVar(&constructorArgs, "arg", nil, "Constructor argument in declaration order (repeatable)")
	cmd.Flags().StringVar(&displayName, "display", "", "Name printed in the confirmation line (defaults to the contract name)")

	return cmd
}

// pickContract asks the user for a contract, listing every deployable contract
// when no candidates are given
func pickContract(ctx context.Context, app *app.App, candidates []*models.Contract) (string, error) {
	if app.Config.NonInteractive {
		return "", fmt.Errorf("a contract name is required in non-interactive mode")
	}

	if candidates == nil {
		listed, err := app.ListContracts.Run(ctx, usecase.ListContractsParams{})
		if err != nil {
			return "", err
		}
		if len(listed.Contracts) == 0 {
			return "", domain.ErrContractNotFound
		}
		candidates = listed.Contracts
	}

	selected, err := app.Selector.SelectContract(ctx, candidates, "Select a contract to deploy")
	if err != nil {
		return "", err
	}
	return selected.Key(), nil
}
