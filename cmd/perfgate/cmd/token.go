package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/perfgate/perfgate/pkg/github"
	"github.com/perfgate/perfgate/pkg/logger"
	"github.com/perfgate/perfgate/pkg/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the CI provider credential",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the credential",
	RunE:  setToken,
}

var tokenCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a credential is stored, well-formed and can reach the repository",
	RunE:  checkToken,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored credential",
	RunE:  clearToken,
}

func init() {
	tokenCheckCmd.Flags().String("owner", "", "repository owner (default from config)")
	tokenCheckCmd.Flags().String("repo", "", "repository name (default from config)")

	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenCheckCmd)
	tokenCmd.AddCommand(tokenClearCmd)
}

func setToken(cmd *cobra.Command, _ []string) error {
	fmt.Print("Token: ")
	raw, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	store, err := tokenStore()
	if err != nil {
		return err
	}
	if err := store.SetToken(strings.TrimSpace(string(raw))); err != nil {
		return err
	}

	logger.Success("Token stored")
	return nil
}

func checkToken(cmd *cobra.Command, _ []string) error {
	store, err := tokenStore()
	if err != nil {
		return err
	}

	tok, err := store.Token()
	if err != nil {
		return err
	}
	if err := token.Validate(tok); err != nil {
		return err
	}
	logger.Success("Token is present and well-formed")

	owner := flagOrConfig(cmd, "owner", "github.owner")
	repo := flagOrConfig(cmd, "repo", "github.repo")
	if owner == "" || repo == "" {
		logger.Infof("Set owner and repo via flags or config to also verify repository access")
		return nil
	}

	client, err := github.NewClient(github.Config{Token: tok})
	if err != nil {
		return err
	}
	err = logger.WithSpinner(fmt.Sprintf("Checking access to %s/%s", owner, repo), func() error {
		return client.ValidateConnection(cmd.Context(), owner, repo)
	})
	if err != nil {
		return err
	}

	logger.Successf("Token can reach %s/%s", owner, repo)
	return nil
}

func clearToken(cmd *cobra.Command, _ []string) error {
	store, err := tokenStore()
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	logger.Success("Token cleared")
	return nil
}
