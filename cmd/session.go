package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/khrees2412/tradecv/pkg/models"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Manage archived interviews",
}

var listSessionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sessions, err := a.Sessions.ListSessions(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No interviews yet. Run 'tradecv interview' to start one.")
			return nil
		}

		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Interviews (%d)", len(sessions))))
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATALOG\tPROGRESS\tSTARTED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				shortID(s.ID), displayName(s), s.Catalog, statusLabel(s), s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var showSessionCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show an interview transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := a.Sessions.GetSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(displayName(s)))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("ID:"), s.ID)
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Catalog:"), s.Catalog)
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Progress:"), statusLabel(s))
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Started:"), s.CreatedAt.Local().Format("2006-01-02 15:04"))
		if s.CompletedAt != nil {
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Completed:"), s.CompletedAt.Local().Format("2006-01-02 15:04"))
		}

		fmt.Fprintln(out, sectionStyle.Render("Transcript"))
		for _, e := range s.Transcript {
			if e.Speaker == models.SpeakerAI {
				fmt.Fprintln(out, promptStyle.Render("AI:  ")+e.Text)
			} else {
				fmt.Fprintln(out, labelStyle.Render("You: ")+valueStyle.Render(e.Text))
			}
		}

		exports, err := a.Sessions.GetSessionExports(cmd.Context(), s.ID)
		if err != nil {
			return err
		}
		if len(exports) > 0 {
			fmt.Fprintln(out, sectionStyle.Render("Exports"))
			for _, e := range exports {
				fmt.Fprintf(out, "%s %s\n", labelStyle.Render(e.Format+":"), e.FilePath)
			}
		}
		return nil
	},
}

var deleteSessionCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete an archived interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := a.Sessions.GetSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := a.Sessions.DeleteSession(cmd.Context(), s.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Deleted"), s.ID)
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayName(s *models.Session) string {
	if s.Record.Name != "" {
		return s.Record.Name
	}
	return "(unnamed)"
}

func statusLabel(s *models.Session) string {
	if s.Complete {
		return "complete"
	}
	return fmt.Sprintf("%d%%", s.Progress)
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(listSessionsCmd)
	sessionCmd.AddCommand(showSessionCmd)
	sessionCmd.AddCommand(deleteSessionCmd)
}
