package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/tradecv/internal/app"
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "tradecv",
	Short: "Build a resume through a guided interview",
	Long: `tradecv walks you through a short interview, by typing or by voice,
and turns your answers into a resume you can save as HTML, PDF, PNG or JSON.
Every interview is archived so it can be previewed and rendered again later.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context(), configDir)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	executed, err := rootCmd.ExecuteContextC(ctx)

	// Cleanup: close app resources
	if executed != nil {
		if a, aerr := app.FromContext(executed.Context()); aerr == nil {
			a.Close()
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.tradecv)")
}

// appFrom returns the App set up by the root pre-run hook
func appFrom(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}
