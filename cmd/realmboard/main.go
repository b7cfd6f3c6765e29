package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/app"
	"github.com/five82/realmboard/internal/config"
	"github.com/five82/realmboard/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		reportError(err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "realmboard",
		Short:         "Terminal dashboard for realm status and pricelists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.PollEvery < 0 {
				return fmt.Errorf("--poll must not be negative, got %d", opts.PollEvery)
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (optional)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "realm refresh interval in seconds (optional, defaults to config)")

	root.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Logout(cmd.Context(), opts.ConfigPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	})

	return root
}

// reportError writes a command failure to stderr through a console logger.
func reportError(err error) {
	logger, logErr := logging.New(config.LogConfig{File: "stderr", Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "realmboard: %v\n", err)
		return
	}
	logger.Error("command failed", zap.Error(err))
	_ = logger.Sync()
}
