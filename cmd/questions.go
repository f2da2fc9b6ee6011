package cmd

import (
	"fmt"

	"github.com/khrees2412/tradecv/internal/interview"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions of a catalog",
	Example: `  tradecv questions
  tradecv questions --catalog voice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("catalog")
		if name == "" {
			if a, err := appFrom(cmd); err == nil {
				name = a.Config.Catalog
			}
		}
		catalog, err := interview.LookupCatalog(name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s catalog (%d questions)", catalog.Name(), catalog.Len())))
		for i, q := range catalog.Questions() {
			target := string(q.Field)
			if q.HasSlot() {
				target = fmt.Sprintf("%s[%d]", q.Field, q.Slot)
			}
			fmt.Fprintf(out, "%2d. %s\n    %s\n", i+1, q.Prompt,
				mutedStyle.Render(fmt.Sprintf("-> %s (%s)", target, q.Kind)))
		}
		fmt.Fprintf(out, "\n%s %s\n", labelStyle.Render("Closing:"), catalog.ClosingMessage())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.Flags().StringP("catalog", "c", "", "catalog to list: chat or voice (default from config)")
}
