package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/perfgate/perfgate/pkg/github"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent workflow runs",
	RunE:  listRuns,
}

func init() {
	runsCmd.Flags().String("owner", "", "repository owner (default from config)")
	runsCmd.Flags().String("repo", "", "repository name (default from config)")
	runsCmd.Flags().String("branch", "", "only show runs for this branch")
	runsCmd.Flags().Int("per-page", 20, "results per page")
	runsCmd.Flags().Int("page", 1, "page number")
}

func listRuns(cmd *cobra.Command, _ []string) error {
	owner := flagOrConfig(cmd, "owner", "github.owner")
	repo := flagOrConfig(cmd, "repo", "github.repo")
	if owner == "" || repo == "" {
		return fmt.Errorf("owner and repo must be set via flags or config")
	}

	branch, _ := cmd.Flags().GetString("branch")
	perPage, _ := cmd.Flags().GetInt("per-page")
	page, _ := cmd.Flags().GetInt("page")

	tok, err := resolveToken(selectedEnvironment())
	if err != nil {
		return fmt.Errorf("no credential available: %w", err)
	}

	client, err := github.NewClient(github.Config{Token: tok})
	if err != nil {
		return err
	}

	runs, err := client.ListRuns(context.Background(), owner, repo, github.ListRunsOptions{
		Branch:  branch,
		PerPage: perPage,
		Page:    page,
	})
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No workflow runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NUMBER\tNAME\tSTATUS\tCONCLUSION\tBRANCH\tSTARTED")
	_, _ = fmt.Fprintln(w, "------\t----\t------\t----------\t------\t-------")

	for _, run := range runs {
		conclusion := run.Conclusion
		if conclusion == "" {
			conclusion = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			run.Number,
			run.Name,
			run.Status,
			conclusion,
			run.Branch,
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	return w.Flush()
}
