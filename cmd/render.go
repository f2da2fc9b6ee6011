package cmd

import (
	"fmt"

	"github.com/khrees2412/tradecv/internal/app"
	"github.com/khrees2412/tradecv/internal/render"
	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [session-id]",
	Short: "Render an archived resume to files",
	Long: `Render the resume from an archived interview, or from a JSON record file,
in one or more formats. PDF output needs Chrome or Chromium installed.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  tradecv render 3f2a --format html,pdf
  tradecv render 3f2a -f png -o ./out
  tradecv render --from ./Jane_Doe_Resume.json --format pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		from, _ := cmd.Flags().GetString("from")
		formats, _ := cmd.Flags().GetStringSlice("format")
		outDir, _ := cmd.Flags().GetString("out")
		if len(formats) == 0 {
			formats = a.Config.Formats
		}
		if outDir == "" {
			outDir = a.Config.OutputDir
		}

		rec, session, err := loadRecord(cmd, args, from)
		if err != nil {
			return err
		}
		if session != nil && !session.Complete {
			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(
				fmt.Sprintf("Session is %d%% complete; empty fields will show placeholders.", session.Progress)))
		}

		docs, err := render.All(cmd.Context(), rec, formats, a.RenderOptions())
		if err != nil {
			return err
		}
		return saveDocuments(cmd, a, session, docs, outDir)
	},
}

// saveDocuments writes docs to outDir and, for archived sessions, records
// each file against the session.
func saveDocuments(cmd *cobra.Command, a *app.App, session *models.Session, docs []*render.Document, outDir string) error {
	out := cmd.OutOrStdout()
	for _, doc := range docs {
		path, err := render.Save(outDir, doc)
		if err != nil {
			return err
		}
		a.Logger.Debug("document saved", "format", doc.Format, "path", path, "bytes", len(doc.Body))
		fmt.Fprintf(out, "%s %s\n", successStyle.Render("✓ Saved"), path)

		if session == nil || session.ID == "" {
			continue
		}
		export := &models.Export{SessionID: session.ID, Format: string(doc.Format), FilePath: path}
		if err := a.Sessions.CreateExport(cmd.Context(), export); err != nil {
			a.Logger.Warn("failed to record export", "session", session.ID, "error", err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("from", "", "render a JSON record file instead of an archived session")
	renderCmd.Flags().StringSliceP("format", "f", nil, "formats: html, pdf, png, json (default from config)")
	renderCmd.Flags().StringP("out", "o", "", "output directory (default from config)")
}
