package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khrees2412/tradecv/internal/app"
	"github.com/khrees2412/tradecv/internal/render"
	"github.com/khrees2412/tradecv/internal/schemas"
	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [session-id]",
	Short: "Show a resume in the terminal",
	Args:  cobra.MaximumNArgs(1),
	Example: `  tradecv preview 3f2a
  tradecv preview --from ./Jane_Doe_Resume.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		rec, _, err := loadRecord(cmd, args, from)
		if err != nil {
			return err
		}
		printPreview(cmd.OutOrStdout(), rec)
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema accepted by --from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(schemas.RecordSchema()))
	},
}

// loadRecord resolves a record from a session ID or a JSON file. The
// session is nil when the record came from a file.
func loadRecord(cmd *cobra.Command, args []string, from string) (models.ResumeRecord, *models.Session, error) {
	switch {
	case from != "" && len(args) > 0:
		return models.ResumeRecord{}, nil, fmt.Errorf("%w: give either a session id or --from, not both", app.ErrInvalidArgument)
	case from != "":
		data, err := os.ReadFile(from)
		if err != nil {
			return models.ResumeRecord{}, nil, fmt.Errorf("failed to read %s: %w", from, err)
		}
		rec, err := schemas.DecodeRecord(data)
		if err != nil {
			return models.ResumeRecord{}, nil, fmt.Errorf("%s: %w", from, err)
		}
		return rec, nil, nil
	case len(args) == 1:
		a, err := appFrom(cmd)
		if err != nil {
			return models.ResumeRecord{}, nil, err
		}
		s, err := a.Sessions.GetSession(cmd.Context(), args[0])
		if err != nil {
			return models.ResumeRecord{}, nil, err
		}
		return s.Record, s, nil
	default:
		return models.ResumeRecord{}, nil, fmt.Errorf("%w: a session id or --from is required", app.ErrInvalidArgument)
	}
}

// printPreview renders rec as a terminal card with the same placeholders
// the documents use.
func printPreview(w io.Writer, rec models.ResumeRecord) {
	v := render.NewView(rec)

	var b strings.Builder
	b.WriteString(promptStyle.Render(v.Name) + "\n")
	b.WriteString(labelStyle.Render(v.Title) + "\n")
	b.WriteString(mutedStyle.Render(strings.ReplaceAll(v.Contact(), " | ", " • ")) + "\n")

	b.WriteString(sectionStyle.Render("Skills") + "\n")
	if len(v.Skills) == 0 {
		b.WriteString(mutedStyle.Render(render.PlaceholderSkills) + "\n")
	} else {
		b.WriteString(valueStyle.Render(strings.Join(v.Skills, " • ")) + "\n")
	}

	b.WriteString(sectionStyle.Render("Work Experience") + "\n")
	if len(v.Experience) == 0 {
		b.WriteString(mutedStyle.Render(render.PlaceholderExperience) + "\n")
	}
	for _, exp := range v.Experience {
		b.WriteString(labelStyle.Render(exp.Title) + " " + mutedStyle.Render(exp.CompanyLine()) + "\n")
		if exp.Responsibilities != "" {
			b.WriteString(valueStyle.Render(exp.Responsibilities) + "\n")
		}
		for _, p := range exp.Points {
			b.WriteString(valueStyle.Render("  • "+p) + "\n")
		}
	}

	b.WriteString(sectionStyle.Render("Education") + "\n")
	if len(v.Education) == 0 {
		b.WriteString(mutedStyle.Render(render.PlaceholderEducation) + "\n")
	}
	for _, edu := range v.Education {
		b.WriteString(labelStyle.Render(edu.Degree) + " " + mutedStyle.Render(edu.InstitutionLine()) + "\n")
	}

	b.WriteString(sectionStyle.Render("Certifications") + "\n")
	if len(v.Certifications) == 0 {
		b.WriteString(mutedStyle.Render(render.PlaceholderCertifications) + "\n")
	}
	for _, c := range v.Certifications {
		b.WriteString(valueStyle.Render("• "+c.String()) + "\n")
	}

	if len(v.Languages) > 0 {
		b.WriteString(sectionStyle.Render("Languages") + "\n")
		b.WriteString(valueStyle.Render(strings.Join(v.Languages, ", ")) + "\n")
	}

	fmt.Fprintln(w, cardStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// progressBar draws a fixed-width bar followed by "N% Complete".
func progressBar(percent int) string {
	const width = 20
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return progressStyle.Render(fmt.Sprintf("%s %d%% Complete", bar, percent))
}

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(schemaCmd)
	previewCmd.Flags().String("from", "", "read the record from a JSON file instead of the archive")
}
