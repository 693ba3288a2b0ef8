package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrappedfriendtech/ftdeploy/internal/adapters/progress"
	"github.com/wrappedfriendtech/ftdeploy/internal/app"
	"github.com/wrappedfriendtech/ftdeploy/internal/config"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipInit lists commands that run without a project
var skipInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ftdeploy",
		Short: "Deployment runner for the Friendtech contracts",
		Long: `ftdeploy deploys compiled Friendtech contracts (WrappedFriendtech,
FriendtechSharesV1, ...) to an EVM network, waits for confirmation and
records every deployment in .ftdeploy/deployments.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipInit[cmd.Name()] {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd.Flags())

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (e.g., localhost, base, base_sepolia)")
	rootCmd.PersistentFlags().String("signer", "", "Account from ftdeploy.toml to deploy from (defaults to default_account)")
	rootCmd.PersistentFlags().String("private-key", "", "Hex private key used as the 'env' account")
	rootCmd.PersistentFlags().Bool("build", false, "Run the configured build command before loading artifacts")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts and the spinner")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Abort the run after this duration")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	runCmd := NewRunCmd()
	runCmd.GroupID = "main"
	rootCmd.AddCommand(runCmd)

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	// Management commands
	contractsCmd := NewContractsCmd()
	contractsCmd.GroupID = "management"
	rootCmd.AddCommand(contractsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	for _, cmd := range rootCmd.Commands() {
		if cmd.RunE != nil && !skipInit[cmd.Name()] {
			cmd.RunE = withRunContext(cmd.RunE)
		}
	}

	return rootCmd
}

// withRunContext bounds a command by the configured timeout and by Ctrl-C.
// The signal handler is released when the command returns, on error too.
func withRunContext(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runContext(cmd)
		defer cancel()

		cmd.SetContext(ctx)
		return run(cmd, args)
	}
}

func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	// Ctrl-C aborts a pending submission or confirmation wait
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)

	app, err := getApp(cmd)
	if err != nil || app.Config.Timeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, app.Config.Timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// newProgressSink picks the spinner for interactive runs and a no-op sink otherwise
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("non_interactive") || v.GetBool("debug") {
		return usecase.NopProgress{}
	}
	return progress.NewSpinnerProgressReporter()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
