package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
)

var (
	tokenSubject string
	tokenName    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token",
	Long:  `Signs a bearer token with AUTH_TOKEN_SECRET for local testing of the API. The subject becomes the resume owner.`,
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Subject (owner ID) of the token (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name claim")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if tokenSubject == "" {
		return fmt.Errorf("--subject is required")
	}
	cfg, err := config.NewIdentityConfig()
	if err != nil {
		return err
	}
	token, err := server.NewIdentityService(cfg).IssueToken(tokenSubject, tokenName)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
