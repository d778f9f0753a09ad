// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

var (
	// User flags
	username string
	email    string
	password string
)

// createSuperuserCmd bootstraps an administrator
var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create or promote a superuser",
	Long: `Create a superuser, or promote an existing account with the same
username. The password may also come from YAMDB_SUPERUSER_PASSWORD.

Examples:
  yamdbctl create-superuser --username root --email root@yamdb.local`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateSuperuser(cmd)
	},
}

// tokenCmd mints an access token for an existing user
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an access token for a user",
	Long: `Sign an access token for an existing user with the server key pair.

Reads JWT_PRIVATE_KEY_PATH, JWT_PUBLIC_KEY_PATH and ACCESS_TOKEN_TTL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToken(cmd)
	},
}

func init() {
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(tokenCmd)

	createSuperuserCmd.Flags().StringVar(&username, "username", "", "Username of the superuser")
	createSuperuserCmd.Flags().StringVar(&email, "email", "", "Email of the superuser")
	createSuperuserCmd.Flags().StringVar(&password, "password", "", "Password (optional)")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("email")

	tokenCmd.Flags().StringVar(&username, "username", "", "Username to sign the token for")
	_ = tokenCmd.MarkFlagRequired("username")
}

func runCreateSuperuser(cmd *cobra.Command) error {
	logger := newLogger()

	pool, err := connect(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if password == "" {
		password = os.Getenv("YAMDB_SUPERUSER_PASSWORD")
	}

	service := account.NewService(account.NewPostgresRepository(pool), logger)
	user, err := service.EnsureSuperuser(cmd.Context(), username, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s ready (role %s)\n", user.Username, user.Role)
	return nil
}

func runToken(cmd *cobra.Command) error {
	signing, err := config.LoadSigning()
	if err != nil {
		return err
	}

	tokens, err := sec.NewTokenService(signing.PrivateKeyPath, signing.PublicKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	logger := newLogger()

	pool, err := connect(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	user, err := account.NewService(account.NewPostgresRepository(pool), logger).Get(cmd.Context(), username)
	if err != nil {
		return err
	}

	token, err := tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), signing.AccessTokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
