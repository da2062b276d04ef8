package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/perfgate/perfgate/pkg/codec"
	"github.com/perfgate/perfgate/pkg/github"
	"github.com/perfgate/perfgate/pkg/logger"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Generate a configuration and dispatch it to the CI workflow",
	RunE:  runDispatch,
}

func init() {
	dispatchCmd.Flags().StringP("format", "f", "json", "output format (json, env, hocon, properties)")
	dispatchCmd.Flags().StringP("preset", "p", "", "dispatch from a saved preset instead of the form")
	dispatchCmd.Flags().String("owner", "", "repository owner (default from config)")
	dispatchCmd.Flags().String("repo", "", "repository name (default from config)")
	dispatchCmd.Flags().String("workflow", "", "workflow file name (default from config)")
	dispatchCmd.Flags().String("branch", "", "branch to dispatch on (default from config)")
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	presetName, _ := cmd.Flags().GetString("preset")

	owner := flagOrConfig(cmd, "owner", "github.owner")
	repo := flagOrConfig(cmd, "repo", "github.repo")
	workflow := flagOrConfig(cmd, "workflow", "github.workflow")
	branch := flagOrConfig(cmd, "branch", "github.branch")
	if branch == "" {
		branch = "main"
	}
	if owner == "" || repo == "" || workflow == "" {
		return fmt.Errorf("owner, repo and workflow must be set via flags or config")
	}

	c, err := codec.DefaultRegistry.Get(format)
	if err != nil {
		return err
	}

	ctx := context.Background()

	in, ref, err := gatherInput(ctx, presetName)
	if err != nil {
		return err
	}

	doc, err := buildDocument(in, ref)
	if err != nil {
		return err
	}

	text, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	tok, err := resolveToken(in.Environment)
	if err != nil {
		return fmt.Errorf("no credential available: %w", err)
	}

	client, err := github.NewClient(github.Config{Token: tok})
	if err != nil {
		return err
	}

	err = logger.WithSpinner(fmt.Sprintf("Dispatching %s/%s %s", owner, repo, workflow), func() error {
		return client.Dispatch(ctx, github.DispatchRequest{
			Owner:    owner,
			Repo:     repo,
			Workflow: workflow,
			Ref:      branch,
			Format:   format,
			Config:   text,
		})
	})
	if err != nil {
		return err
	}

	logger.Infof("Dispatched %s configuration for %s on %s", format, in.Selections.Scenario, branch)
	return nil
}

func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}
