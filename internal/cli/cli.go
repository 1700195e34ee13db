package cli

import (
	"context"

	"github.com/xxxsen/alloyctl/internal/app"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "alloyctl",
	Short:        "Collect applicant details and run an Alloy identity evaluation",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Debug("exec cmd failed", zap.Error(err))
		return err
	}
	return nil
}

// commandContext falls back to a background context when cobra did not set one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func run(cmd *cobra.Command, runner app.IRunner) error {
	ctx := commandContext(cmd)
	logutil.GetLogger(ctx).Debug("run command", zap.String("runner", runner.Name()))
	return app.Execute(ctx, runner)
}

func init() {
	// The bare binary runs the default runner with its own flag set.
	defaultRunner := app.MustResolveRunner(app.DefaultRunner)
	defaultRunner.Init(rootCmd.Flags())
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, defaultRunner)
	}

	for _, r := range app.RunnerList() {
		runner := app.MustResolveRunner(r)
		subcmd := &cobra.Command{
			Use:   runner.Name(),
			Short: runner.Desc(),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, runner)
			},
		}
		runner.Init(subcmd.Flags())
		rootCmd.AddCommand(subcmd)
	}
}
