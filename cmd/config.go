package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/tradecv/internal/app"
	"github.com/khrees2412/tradecv/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		c := a.Config
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, titleStyle.Render("Configuration"))
		row := func(label string, value interface{}) {
			fmt.Fprintf(out, "%s %v\n", labelStyle.Render(label), value)
		}
		row("Config File:", config.Path(a.ConfigDir))
		row("Catalog:", c.Catalog)
		row("Formats:", strings.Join(c.Formats, ", "))
		row("Output Dir:", c.OutputDir)
		row("Database:", c.DatabasePath)
		row("Log:", c.LogMode+" / "+c.LogLevel)
		row("Voice Language:", c.Voice.Language)
		row("Voice Rate/Pitch/Volume:", fmt.Sprintf("%g / %g / %g", c.Voice.Rate, c.Voice.Pitch, c.Voice.Volume))
		row("Voice Delays:", fmt.Sprintf("start %s, listen %s, processing %s",
			c.Voice.StartDelay, c.Voice.ListenDelay, c.Voice.ProcessingDelay))
		row("PDF Timeout:", c.PDF.Timeout)
		if c.PDF.ChromePath != "" {
			row("Chrome:", c.PDF.ChromePath)
		} else {
			row("Chrome:", "(found on PATH)")
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  tradecv config set --key catalog --value voice
  tradecv config set --key formats --value html,pdf
  tradecv config set --key voice.processing_delay --value 2s
  tradecv config set --key pdf.chrome_path --value /usr/bin/chromium`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("%w: both --key and --value are required", app.ErrInvalidArgument)
		}

		if err := config.Set(a.ConfigDir, key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Configuration updated:"), key)
		return nil
	},
}

var keysConfigCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable configuration keys",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range config.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
	configCmd.AddCommand(keysConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
